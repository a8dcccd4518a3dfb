//go:build !gocv
// +build !gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestGoCVRendererStub(t *testing.T) {
	_, err := NewGoCVRenderer().RenderComparison([]byte("img"), &entity.ComparisonResult{})
	require.ErrorIs(t, err, ErrOverlayDisabled)
	require.False(t, OverlayEnabled)
}
