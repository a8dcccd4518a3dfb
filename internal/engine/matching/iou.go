// Package matching сопоставляет рамки ученика с эталонными рамками по IoU.
package matching

import (
	"math"

	"fracture-tutor/internal/domain/entity"
)

// ComputeIoU возвращает отношение площади пересечения к площади объединения
func ComputeIoU(a, b entity.BoundingBox) float64 {
	x1 := math.Max(a.X, b.X)
	y1 := math.Max(a.Y, b.Y)
	x2 := math.Min(a.Right(), b.Right())
	y2 := math.Min(a.Bottom(), b.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}
