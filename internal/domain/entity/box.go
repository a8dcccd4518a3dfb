package entity

import "math"

// DefaultMinBoxSize минимальная сторона рамки в пикселях изображения
const DefaultMinBoxSize = 10.0

// Point точка в произвольном пространстве координат
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size размеры поверхности или диалога
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect прямоугольник в координатах экрана (viewport)
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right возвращает правую границу
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom возвращает нижнюю границу
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center возвращает центр прямоугольника
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Intersects проверяет, что прямоугольники перекрываются с ненулевой площадью
func (r Rect) Intersects(other Rect) bool {
	return r.Right() > other.Left && r.Left < other.Right() &&
		r.Bottom() > other.Top && r.Top < other.Bottom()
}

// BoundingBox рамка в пикселях исходного изображения
type BoundingBox struct {
	X      float64 `json:"x"`      // левый верхний угол, X
	Y      float64 `json:"y"`      // левый верхний угол, Y
	Width  float64 `json:"width"`  // ширина в пикселях
	Height float64 `json:"height"` // высота в пикселях
}

// NormalizedBox строит рамку по двум противоположным углам в любом порядке
func NormalizedBox(a, b Point) BoundingBox {
	return BoundingBox{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Right возвращает правую границу рамки
func (b BoundingBox) Right() float64 { return b.X + b.Width }

// Bottom возвращает нижнюю границу рамки
func (b BoundingBox) Bottom() float64 { return b.Y + b.Height }

// Area возвращает площадь рамки
func (b BoundingBox) Area() float64 { return b.Width * b.Height }

// Valid сообщает, что обе стороны не меньше minSize
func (b BoundingBox) Valid(minSize float64) bool {
	return b.Width >= minSize && b.Height >= minSize
}
