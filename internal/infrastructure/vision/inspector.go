package vision

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// Inspector определяет размер снимка с учётом EXIF-ориентации
type Inspector struct{}

// NewInspector создаёт Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// NativeSize декодирует снимок и возвращает его размер в пикселях
func (i *Inspector) NativeSize(imageData []byte) (entity.Size, error) {
	if len(imageData) == 0 {
		return entity.Size{}, errors.New("empty image")
	}
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return entity.Size{}, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return entity.Size{}, errors.New("empty image")
	}
	return entity.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, nil
}

var _ port.ImageInspector = (*Inspector)(nil)
