// Package history сводит результаты сравнений по многим снимкам в общую статистику.
package history

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"fracture-tutor/internal/domain/entity"
)

// Aggregate считает средние F1 и точность классификации (в процентах) и суммы счётчиков.
// Для пустого входа возвращает нулевую статистику. Порядок результатов не важен.
func Aggregate(results []entity.ComparisonResult) entity.OverallStats {
	if len(results) == 0 {
		return entity.OverallStats{}
	}

	f1 := make([]float64, len(results))
	accuracy := make([]float64, len(results))
	stats := entity.OverallStats{TotalImages: len(results)}
	for i, r := range results {
		f1[i] = r.Metrics.F1
		accuracy[i] = r.ClassificationAccuracy
		stats.TotalMatches += len(r.Matches)
		stats.TotalStudentDetections += len(r.StudentDetections)
		stats.TotalAIDetections += len(r.AIDetections)
	}

	// Суммирование в фиксированном порядке: результат не зависит от порядка входа до последнего бита
	sort.Float64s(f1)
	sort.Float64s(accuracy)
	stats.AvgF1 = stat.Mean(f1, nil) * 100
	stats.AvgClassificationAccuracy = stat.Mean(accuracy, nil) * 100
	return stats
}
