package port

import (
	"context"

	"fracture-tutor/internal/domain/entity"
)

// ReferenceSource внешний источник эталонных детекций
type ReferenceSource interface {
	// Detections возвращает эталонные рамки для снимка
	Detections(ctx context.Context, imageID string, imageData []byte) ([]entity.Detection, error)
}
