package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestToImageSpace_ScalesAndOffsets(t *testing.T) {
	display := entity.Rect{Left: 100, Top: 50, Width: 400, Height: 300}
	native := entity.Size{Width: 1600, Height: 1200}

	p, err := ToImageSpace(entity.Point{X: 150, Y: 80}, display, native)
	require.NoError(t, err)
	require.InDelta(t, 200, p.X, 1e-9)
	require.InDelta(t, 120, p.Y, 1e-9)
}

func TestToImageSpace_NonUniformScale(t *testing.T) {
	display := entity.Rect{Width: 100, Height: 100}
	native := entity.Size{Width: 800, Height: 200}

	p, err := ToImageSpace(entity.Point{X: 50, Y: 50}, display, native)
	require.NoError(t, err)
	require.Equal(t, entity.Point{X: 400, Y: 100}, p)
}

func TestToViewportSpace_InvertsToImageSpace(t *testing.T) {
	display := entity.Rect{Left: 13, Top: 7, Width: 333, Height: 250}
	native := entity.Size{Width: 2048, Height: 1536}

	for _, in := range []entity.Point{{X: 13, Y: 7}, {X: 100, Y: 200}, {X: 346, Y: 257}} {
		img, err := ToImageSpace(in, display, native)
		require.NoError(t, err)
		back, err := ToViewportSpace(img, display, native)
		require.NoError(t, err)
		require.InDelta(t, in.X, back.X, 1e-9)
		require.InDelta(t, in.Y, back.Y, 1e-9)
	}
}

func TestBoxToViewport(t *testing.T) {
	display := entity.Rect{Left: 10, Top: 20, Width: 500, Height: 250}
	native := entity.Size{Width: 1000, Height: 500}

	r, err := BoxToViewport(entity.BoundingBox{X: 100, Y: 50, Width: 200, Height: 100}, display, native)
	require.NoError(t, err)
	require.Equal(t, entity.Rect{Left: 60, Top: 45, Width: 100, Height: 50}, r)
}

func TestTransform_ZeroDisplayIsGeometryError(t *testing.T) {
	native := entity.Size{Width: 100, Height: 100}

	_, err := ToImageSpace(entity.Point{X: 1, Y: 1}, entity.Rect{Width: 0, Height: 10}, native)
	var geomErr *entity.GeometryError
	require.True(t, errors.As(err, &geomErr))

	_, err = ToViewportSpace(entity.Point{}, entity.Rect{Width: 10, Height: 0}, native)
	require.True(t, errors.As(err, &geomErr))

	_, err = BoxToViewport(entity.BoundingBox{}, entity.Rect{Width: 10, Height: 10}, entity.Size{})
	require.True(t, errors.As(err, &geomErr))
}
