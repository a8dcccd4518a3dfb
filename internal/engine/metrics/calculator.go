package metrics

import (
	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/engine/matching"
)

// Calculator собирает полный результат сравнения по одному снимку
type Calculator struct {
	matcher *matching.Matcher
}

// NewCalculator создаёт калькулятор с порогом IoU
func NewCalculator(iouThreshold float64) *Calculator {
	return &Calculator{matcher: matching.NewMatcher(iouThreshold)}
}

// Threshold возвращает используемый порог IoU
func (c *Calculator) Threshold() float64 { return c.matcher.Threshold }

// Compare сопоставляет рамки и считает метрики, категорию и разбор
func (c *Calculator) Compare(student, ai []entity.Detection) entity.ComparisonResult {
	matched := c.matcher.Match(student, ai)

	metrics := Calculate(matched.Matches, len(student), len(ai))
	metrics.IoUThreshold = c.matcher.Threshold

	result := entity.ComparisonResult{
		StudentDetections:      nonNil(student),
		AIDetections:           nonNil(ai),
		Matches:                matched.Matches,
		UnmatchedStudent:       matched.UnmatchedStudent,
		UnmatchedAI:            matched.UnmatchedAI,
		Metrics:                metrics,
		ClassificationAccuracy: ClassificationAccuracy(matched.Matches),
		Outcome:                ClassifyOutcome(len(student), len(ai)),
	}
	result.Feedback = BuildFeedback(&result)
	return result
}

func nonNil(dets []entity.Detection) []entity.Detection {
	if dets == nil {
		return []entity.Detection{}
	}
	return dets
}
