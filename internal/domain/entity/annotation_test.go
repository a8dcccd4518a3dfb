package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFractureType(t *testing.T) {
	ft, err := ParseFractureType("  Spiral ")
	require.NoError(t, err)
	require.Equal(t, FractureSpiral, ft)

	_, err = ParseFractureType("hairline")
	require.Error(t, err)
}

func TestSameFractureType(t *testing.T) {
	require.True(t, SameFractureType("Oblique", FractureOblique))
	require.False(t, SameFractureType("", ""))
	require.False(t, SameFractureType(FractureSpiral, ""))
	require.False(t, SameFractureType(FractureSpiral, FractureTransverse))
}

func TestAnnotationToDetection(t *testing.T) {
	a := Annotation{
		ID:           "a1",
		BoundingBox:  BoundingBox{X: 1, Y: 2, Width: 30, Height: 40},
		FractureType: FractureTransverse,
	}
	d := a.ToDetection(1, "#3b82f6")
	require.Equal(t, "a1", d.ID)
	require.Equal(t, SourceStudent, d.Source)
	require.Equal(t, "Student #2", d.Label)
	require.Equal(t, a.BoundingBox, d.BoundingBox)
	require.Equal(t, "#3b82f6", d.Color)
}
