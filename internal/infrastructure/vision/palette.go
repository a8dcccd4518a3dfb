package vision

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"fracture-tutor/internal/domain/entity"
)

// Цвета по умолчанию для рамок без заданного цвета
var (
	StudentColor = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	AIColor      = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// ParseColor разбирает цвет вида #rrggbb или #rgb; при ошибке возвращает fallback
func ParseColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// DetectionColor цвет рамки детекции с учётом её источника
func DetectionColor(d entity.Detection) color.RGBA {
	if d.Source == entity.SourceAI {
		return ParseColor(d.Color, AIColor)
	}
	return ParseColor(d.Color, StudentColor)
}

// TextColor подбирает чёрный или белый текст для плашки цвета bg
func TextColor(bg color.RGBA) color.RGBA {
	c, _ := colorful.MakeColor(bg)
	l, _, _ := c.Lab()
	if l > 0.6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// LabelText подпись рамки: тип перелома (или метка) и уверенность модели
func LabelText(d entity.Detection) string {
	label := string(d.FractureType)
	if label == "" {
		label = d.Label
	}
	if d.Confidence != nil && *d.Confidence > 0 {
		return fmt.Sprintf("%s %d%%", label, int(math.Round(*d.Confidence*100)))
	}
	return label
}
