// Package metrics считает метрики сравнения разметки ученика с эталоном
// и формирует текстовый разбор результата.
package metrics

import "fracture-tutor/internal/domain/entity"

// Calculate считает precision/recall/F1 и средний IoU.
// precision = M/A, recall = M/S; при нулевом знаменателе метрика равна 0.
func Calculate(matches []entity.Match, studentCount, aiCount int) entity.Metrics {
	m := float64(len(matches))

	var out entity.Metrics
	if aiCount > 0 {
		out.Precision = m / float64(aiCount)
	}
	if studentCount > 0 {
		out.Recall = m / float64(studentCount)
	}
	if out.Precision+out.Recall > 0 {
		out.F1 = 2 * out.Precision * out.Recall / (out.Precision + out.Recall)
	}
	if len(matches) > 0 {
		var sum float64
		for _, match := range matches {
			sum += match.IoU
		}
		out.AvgIoU = sum / m
	}
	return out
}

// ClassificationAccuracy доля пар с совпавшим типом перелома; считается только по парам
func ClassificationAccuracy(matches []entity.Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	correct := 0
	for _, m := range matches {
		if m.FractureTypeMatch {
			correct++
		}
	}
	return float64(correct) / float64(len(matches))
}

// ClassifyOutcome определяет категорию результата по числу рамок
func ClassifyOutcome(studentCount, aiCount int) entity.Outcome {
	switch {
	case studentCount == 0 && aiCount == 0:
		return entity.OutcomeBothNormal
	case studentCount > 0 && aiCount > 0:
		return entity.OutcomeBothFoundFractures
	case studentCount > 0 && aiCount == 0:
		return entity.OutcomeStudentOnly
	case studentCount == 0 && aiCount > 0:
		return entity.OutcomeAIOnly
	default:
		// Недостижимо для неотрицательных счётчиков: четыре ветки выше покрывают все случаи.
		return entity.OutcomeDisagreement
	}
}
