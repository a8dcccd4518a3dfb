package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestCalculate_ZeroCountsAreNotNaN(t *testing.T) {
	m := Calculate(nil, 0, 0)
	require.Equal(t, entity.Metrics{}, m)
	require.False(t, math.IsNaN(m.F1))
}

func TestCalculate_PrecisionOverAIRecallOverStudent(t *testing.T) {
	matches := []entity.Match{{IoU: 0.8}, {IoU: 0.6}}

	m := Calculate(matches, 4, 2)
	require.InDelta(t, 1.0, m.Precision, 1e-12)
	require.InDelta(t, 0.5, m.Recall, 1e-12)
	require.InDelta(t, 2*1.0*0.5/1.5, m.F1, 1e-12)
	require.InDelta(t, 0.7, m.AvgIoU, 1e-12)
}

func TestCalculate_NoMatches(t *testing.T) {
	m := Calculate(nil, 3, 2)
	require.Zero(t, m.Precision)
	require.Zero(t, m.Recall)
	require.Zero(t, m.F1)
	require.Zero(t, m.AvgIoU)
}

func TestClassificationAccuracy(t *testing.T) {
	require.Zero(t, ClassificationAccuracy(nil))
	require.InDelta(t, 2.0/3.0, ClassificationAccuracy([]entity.Match{
		{FractureTypeMatch: true}, {FractureTypeMatch: false}, {FractureTypeMatch: true},
	}), 1e-12)
}

func TestClassifyOutcome(t *testing.T) {
	require.Equal(t, entity.OutcomeBothNormal, ClassifyOutcome(0, 0))
	require.Equal(t, entity.OutcomeBothFoundFractures, ClassifyOutcome(2, 1))
	require.Equal(t, entity.OutcomeStudentOnly, ClassifyOutcome(1, 0))
	require.Equal(t, entity.OutcomeAIOnly, ClassifyOutcome(0, 3))
}
