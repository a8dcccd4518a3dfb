//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// OverlayEnabled собран ли рендерер на OpenCV
const OverlayEnabled = false

// ErrOverlayDisabled сборка без тега gocv не умеет рисовать поверх снимка
var ErrOverlayDisabled = errors.New("gocv build tag is not enabled")

// GoCVRenderer заглушка рендерера (без OpenCV)
type GoCVRenderer struct {
	Thickness int
	FontScale float64
	Padding   int
}

// NewGoCVRenderer создаёт рендерер-заглушку
func NewGoCVRenderer() *GoCVRenderer {
	return &GoCVRenderer{Thickness: 3, FontScale: 0.6, Padding: 4}
}

// RenderComparison возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) RenderComparison(imageData []byte, result *entity.ComparisonResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, ErrOverlayDisabled
}

var _ port.OverlayRenderer = (*GoCVRenderer)(nil)
