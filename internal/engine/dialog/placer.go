// Package dialog выбирает положение всплывающей карточки рядом с рамкой так,
// чтобы карточка не выходила за пределы viewport.
package dialog

import (
	"math"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/engine/geometry"
)

const (
	DefaultArrowOffset = 10.0 // зазор между рамкой и карточкой
	DefaultMargin      = 8.0  // отступ карточки от краёв viewport
)

// Arrow край карточки, обращённый к рамке
type Arrow string

const (
	ArrowLeft   Arrow = "left"
	ArrowRight  Arrow = "right"
	ArrowTop    Arrow = "top"
	ArrowBottom Arrow = "bottom"
)

// VisibilityPolicy правило, по которому рамка считается видимой
type VisibilityPolicy int

const (
	// VisibleInEither рамка видима, если пересекает контейнер прокрутки или viewport
	VisibleInEither VisibilityPolicy = iota
	// VisibleInBoth рамка видима, только если пересекает и контейнер, и viewport
	VisibleInBoth
)

// Placement результат расчёта положения
type Placement struct {
	Visible bool    `json:"visible"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Arrow   Arrow   `json:"arrow,omitempty"`
}

// Placer рассчитывает положение карточки. Состояния не хранит:
// пересчитывать нужно на каждое событие прокрутки и изменения размера.
type Placer struct {
	ArrowOffset float64
	Margin      float64
	Policy      VisibilityPolicy
}

// NewPlacer создаёт Placer с параметрами по умолчанию
func NewPlacer() *Placer {
	return &Placer{ArrowOffset: DefaultArrowOffset, Margin: DefaultMargin, Policy: VisibleInEither}
}

// Place выбирает первое подходящее положение в порядке: слева, справа, снизу, сверху
func (p *Placer) Place(target, container entity.Rect, dialog, viewport entity.Size) Placement {
	view := entity.Rect{Width: viewport.Width, Height: viewport.Height}
	inContainer := target.Intersects(container)
	inViewport := target.Intersects(view)

	visible := inContainer || inViewport
	if p.Policy == VisibleInBoth {
		visible = inContainer && inViewport
	}
	if !visible {
		return Placement{Visible: false}
	}

	minX, maxX := p.Margin, viewport.Width-p.Margin
	minY, maxY := p.Margin, viewport.Height-p.Margin
	center := target.Center()
	crossTop := clamp(center.Y-dialog.Height/2, minY, maxY-dialog.Height)
	crossLeft := clamp(center.X-dialog.Width/2, minX, maxX-dialog.Width)

	if left := target.Left - dialog.Width - p.ArrowOffset; fits(left, dialog.Width, minX, maxX) {
		return Placement{Visible: true, Left: left, Top: crossTop, Arrow: ArrowRight}
	}
	if left := target.Right() + p.ArrowOffset; fits(left, dialog.Width, minX, maxX) {
		return Placement{Visible: true, Left: left, Top: crossTop, Arrow: ArrowLeft}
	}
	if top := target.Bottom() + p.ArrowOffset; fits(top, dialog.Height, minY, maxY) {
		return Placement{Visible: true, Left: crossLeft, Top: top, Arrow: ArrowTop}
	}

	top := clamp(target.Top-dialog.Height-p.ArrowOffset, minY, maxY-dialog.Height)
	return Placement{Visible: true, Left: crossLeft, Top: top, Arrow: ArrowBottom}
}

// PlaceBox переводит рамку изображения в экранные координаты и размещает карточку рядом
func (p *Placer) PlaceBox(box entity.BoundingBox, display entity.Rect, native entity.Size, container entity.Rect, dialog, viewport entity.Size) (Placement, error) {
	target, err := geometry.BoxToViewport(box, display, native)
	if err != nil {
		return Placement{}, err
	}
	return p.Place(target, container, dialog, viewport), nil
}

func fits(start, length, lo, hi float64) bool {
	return start >= lo && start+length <= hi
}

// Нижняя граница важнее верхней: при слишком маленьком viewport карточка прижимается к отступу.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
