package port

import "fracture-tutor/internal/domain/entity"

// ImageInspector определяет исходный размер снимка
type ImageInspector interface {
	// NativeSize декодирует снимок и возвращает его размер в пикселях
	NativeSize(imageData []byte) (entity.Size, error)
}

// OverlayRenderer рисует рамки ученика и модели поверх снимка
type OverlayRenderer interface {
	// RenderComparison возвращает JPEG с нанесёнными рамками
	RenderComparison(imageData []byte, result *entity.ComparisonResult) ([]byte, error)
}
