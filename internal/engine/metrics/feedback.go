package metrics

import (
	"fmt"
	"strconv"

	"fracture-tutor/internal/domain/entity"
)

const (
	goodF1Threshold     = 0.7
	fairF1Threshold     = 0.4
	preciseIoUThreshold = 0.5
)

// BuildFeedback формирует разбор результата; одинаковый вход даёт одинаковый текст
func BuildFeedback(r *entity.ComparisonResult) entity.Feedback {
	fb := entity.Feedback{Suggestions: []string{}}
	studentCount := len(r.StudentDetections)
	matched := len(r.Matches)

	switch r.Outcome {
	case entity.OutcomeBothNormal:
		fb.Overall = "Отлично! Вы и модель сходитесь: переломов нет."
	case entity.OutcomeBothFoundFractures:
		switch {
		case r.Metrics.F1 >= goodF1Threshold:
			fb.Overall = "Отличная работа! Ваша разметка близка к разметке модели."
		case r.Metrics.F1 >= fairF1Threshold:
			fb.Overall = "Неплохо! Часть рамок совпала, но есть что улучшить."
		default:
			fb.Overall = "Продолжайте практиковаться: ваша разметка заметно отличается от разметки модели."
		}
	case entity.OutcomeStudentOnly:
		fb.Overall = "Вы нашли переломы, которых не нашла модель. Перепроверьте свои находки."
	case entity.OutcomeAIOnly:
		fb.Overall = "Модель нашла переломы, которые вы могли пропустить. Внимательно изучите снимок."
	default:
		fb.Overall = "Ваша разметка и разметка модели расходятся."
	}

	if matched > 0 {
		fb.DetectionPerformance = fmt.Sprintf(
			"Совпадение рамок: %d из %d ваших рамок совпали с рамками модели (IoU ≥ %s). Средний IoU: %s",
			matched, studentCount,
			strconv.FormatFloat(r.Metrics.IoUThreshold, 'f', -1, 64),
			strconv.FormatFloat(r.Metrics.AvgIoU, 'f', 2, 64),
		)

		correct := r.CorrectTypes()
		fb.ClassificationPerformance = fmt.Sprintf(
			"Классификация: %d из %d типов переломов верно (точность %s%%)",
			correct, matched,
			strconv.FormatFloat(r.ClassificationAccuracy*100, 'f', 1, 64),
		)
	}

	if n := len(r.UnmatchedStudent); n > 0 {
		fb.Suggestions = append(fb.Suggestions, fmt.Sprintf(
			"Рамок без пары у вас: %d. Это могут быть ложные срабатывания, либо модель их пропустила.", n))
	}
	if n := len(r.UnmatchedAI); n > 0 {
		fb.Suggestions = append(fb.Suggestions, fmt.Sprintf(
			"Модель нашла переломов, которые вы не отметили: %d. Изучите эти области.", n))
	}
	if wrong := matched - r.CorrectTypes(); wrong > 0 {
		fb.Suggestions = append(fb.Suggestions, fmt.Sprintf(
			"Неверно определён тип перелома: %d. Повторите признаки разных типов переломов.", wrong))
	}
	if matched > 0 && r.Metrics.AvgIoU < preciseIoUThreshold {
		fb.Suggestions = append(fb.Suggestions, "Старайтесь точнее обводить рамкой область перелома.")
	}

	return fb
}
