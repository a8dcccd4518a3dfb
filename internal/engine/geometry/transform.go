// Package geometry переводит координаты между экраном, отрисованным холстом и исходным изображением.
package geometry

import "fracture-tutor/internal/domain/entity"

// Scale возвращает коэффициенты перевода из пикселей холста в пиксели изображения
func Scale(display entity.Rect, native entity.Size) (scaleX, scaleY float64, err error) {
	if display.Width <= 0 || display.Height <= 0 {
		return 0, 0, &entity.GeometryError{Op: "scale", Display: display}
	}
	return native.Width / display.Width, native.Height / display.Height, nil
}

// ToImageSpace переводит точку указателя (координаты viewport) в пиксели изображения
func ToImageSpace(p entity.Point, display entity.Rect, native entity.Size) (entity.Point, error) {
	scaleX, scaleY, err := Scale(display, native)
	if err != nil {
		return entity.Point{}, &entity.GeometryError{Op: "to image space", Display: display}
	}
	return entity.Point{
		X: (p.X - display.Left) * scaleX,
		Y: (p.Y - display.Top) * scaleY,
	}, nil
}

// ToViewportSpace обратное преобразование: пиксели изображения -> viewport
func ToViewportSpace(p entity.Point, display entity.Rect, native entity.Size) (entity.Point, error) {
	if err := checkInverse(display, native); err != nil {
		return entity.Point{}, err
	}
	return entity.Point{
		X: display.Left + p.X*display.Width/native.Width,
		Y: display.Top + p.Y*display.Height/native.Height,
	}, nil
}

// BoxToViewport возвращает экранный прямоугольник рамки изображения
func BoxToViewport(b entity.BoundingBox, display entity.Rect, native entity.Size) (entity.Rect, error) {
	if err := checkInverse(display, native); err != nil {
		return entity.Rect{}, err
	}
	sx := display.Width / native.Width
	sy := display.Height / native.Height
	return entity.Rect{
		Left:   display.Left + b.X*sx,
		Top:    display.Top + b.Y*sy,
		Width:  b.Width * sx,
		Height: b.Height * sy,
	}, nil
}

// Нулевой размер изображения на обратном пути тоже означает, что раскладка неизвестна.
func checkInverse(display entity.Rect, native entity.Size) error {
	if display.Width <= 0 || display.Height <= 0 || native.Width <= 0 || native.Height <= 0 {
		return &entity.GeometryError{Op: "to viewport space", Display: display}
	}
	return nil
}
