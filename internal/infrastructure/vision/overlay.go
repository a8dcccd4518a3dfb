//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"

	"gocv.io/x/gocv"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/engine/dialog"
)

// OverlayEnabled собран ли рендерер на OpenCV
const OverlayEnabled = true

// GoCVRenderer рисует рамки ученика и модели поверх снимка
type GoCVRenderer struct {
	Thickness int
	FontScale float64
	Padding   int
	placer    *dialog.Placer
}

// NewGoCVRenderer создаёт рендерер с параметрами по умолчанию
func NewGoCVRenderer() *GoCVRenderer {
	return &GoCVRenderer{
		Thickness: 3,
		FontScale: 0.6,
		Padding:   4,
		placer:    dialog.NewPlacer(),
	}
}

// RenderComparison рисует эталонные рамки, затем рамки ученика с подписями
func (r *GoCVRenderer) RenderComparison(imageData []byte, result *entity.ComparisonResult) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	size := entity.Size{Width: float64(mat.Cols()), Height: float64(mat.Rows())}
	for _, d := range result.AIDetections {
		r.drawDetection(&mat, d, size)
	}
	for _, d := range result.StudentDetections {
		r.drawDetection(&mat, d, size)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (r *GoCVRenderer) drawDetection(mat *gocv.Mat, d entity.Detection, size entity.Size) {
	c := DetectionColor(d)
	rect := image.Rect(int(d.X), int(d.Y), int(d.Right()), int(d.Bottom()))
	gocv.Rectangle(mat, rect, c, r.Thickness)

	text := LabelText(d)
	if text == "" {
		return
	}

	// Подпись размещается так же, как карточка редактирования: рядом с рамкой и внутри снимка.
	textSize := gocv.GetTextSize(text, gocv.FontHersheySimplex, r.FontScale, 1)
	card := entity.Size{
		Width:  float64(textSize.X + 2*r.Padding),
		Height: float64(textSize.Y + 2*r.Padding),
	}
	target := entity.Rect{Left: d.X, Top: d.Y, Width: d.Width, Height: d.Height}
	whole := entity.Rect{Width: size.Width, Height: size.Height}
	pl := r.placer.Place(target, whole, card, size)
	if !pl.Visible {
		return
	}

	cardRect := image.Rect(int(pl.Left), int(pl.Top), int(pl.Left+card.Width), int(pl.Top+card.Height))
	gocv.Rectangle(mat, cardRect, c, -1)
	origin := image.Pt(cardRect.Min.X+r.Padding, cardRect.Max.Y-r.Padding)
	gocv.PutText(mat, text, origin, gocv.FontHersheySimplex, r.FontScale, TextColor(c), 1)
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

var _ port.OverlayRenderer = (*GoCVRenderer)(nil)
