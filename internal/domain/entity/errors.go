package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAnnotationNotFound черновик с таким ID не существует
	ErrAnnotationNotFound = errors.New("annotation not found")
	// ErrNoSession у пользователя нет открытого снимка для разметки
	ErrNoSession = errors.New("no annotation session")
	// ErrNoSubmission у ученика нет отправленной разметки, которую можно пересмотреть
	ErrNoSubmission = errors.New("no submission to revise")
)

// GeometryError преобразование координат запрошено до того, как известна раскладка
type GeometryError struct {
	Op      string
	Display Rect
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: display surface has no size (%gx%g)", e.Op, e.Display.Width, e.Display.Height)
}

// ValidationError рамка или набор рамок не проходит доменные правила
type ValidationError struct {
	Reason string
	IDs    []string
}

func (e *ValidationError) Error() string {
	if len(e.IDs) == 0 {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Reason, strings.Join(e.IDs, ", "))
}
