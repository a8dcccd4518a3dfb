package drawing

import (
	"github.com/google/uuid"

	"fracture-tutor/internal/domain/entity"
)

// Session черновая разметка одного ученика на одном снимке.
// Не предназначена для одновременного использования из нескольких горутин.
type Session struct {
	machine     *Machine
	annotations []entity.Annotation
	newID       func() string
}

// Option настраивает сессию
type Option func(*Session)

// WithIDGenerator подменяет генератор идентификаторов черновиков
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.newID = gen }
}

// NewSession создаёт пустую сессию разметки
func NewSession(minSize float64, opts ...Option) *Session {
	s := &Session{
		machine: NewMachine(minSize),
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State возвращает состояние автомата рисования
func (s *Session) State() State { return s.machine.State() }

// Begin начинает рисование рамки в точке изображения
func (s *Session) Begin(p entity.Point) State { return s.machine.Begin(p) }

// Update растягивает рамку
func (s *Session) Update(p entity.Point) { s.machine.Update(p) }

// Provisional возвращает рамку, которая сейчас рисуется
func (s *Session) Provisional() (entity.BoundingBox, bool) { return s.machine.Provisional() }

// End фиксирует рамку как новый черновик, если она не меньше порога
func (s *Session) End() (entity.Annotation, bool) {
	box, ok := s.machine.End()
	if !ok {
		return entity.Annotation{}, false
	}
	a := entity.Annotation{ID: s.newID(), BoundingBox: box}
	s.annotations = append(s.annotations, a)
	return a, true
}

// Add добавляет готовый черновик, например восстановленный из прошлой отправки
func (s *Session) Add(a entity.Annotation) (entity.Annotation, error) {
	if !a.Valid(s.machine.MinSize) {
		return entity.Annotation{}, &entity.ValidationError{Reason: "box is smaller than the minimum size", IDs: []string{a.ID}}
	}
	if a.ID == "" {
		a.ID = s.newID()
	}
	if s.index(a.ID) >= 0 {
		return entity.Annotation{}, &entity.ValidationError{Reason: "duplicate annotation id", IDs: []string{a.ID}}
	}
	s.annotations = append(s.annotations, a)
	return a, nil
}

// Cancel прерывает рисование; рамка достаточного размера всё равно сохраняется
func (s *Session) Cancel() (entity.Annotation, bool) { return s.End() }

// Annotations возвращает копию списка черновиков
func (s *Session) Annotations() []entity.Annotation {
	out := make([]entity.Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// Len количество черновиков
func (s *Session) Len() int { return len(s.annotations) }

// SetFractureType задаёт тип перелома черновику
func (s *Session) SetFractureType(id string, t entity.FractureType) error {
	i := s.index(id)
	if i < 0 {
		return entity.ErrAnnotationNotFound
	}
	s.annotations[i].FractureType = t
	return nil
}

// SetNotes задаёт заметку черновику
func (s *Session) SetNotes(id, notes string) error {
	i := s.index(id)
	if i < 0 {
		return entity.ErrAnnotationNotFound
	}
	s.annotations[i].Notes = notes
	return nil
}

// Remove удаляет черновик
func (s *Session) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
	return true
}

// Clear сбрасывает и черновики, и незавершённый жест
func (s *Session) Clear() {
	s.annotations = nil
	s.machine.reset()
}

// Submission готовит данные для отправки во внешнее API.
// Пустой список тоже допустим: это ответ «переломов нет».
func (s *Session) Submission(requireType bool) ([]entity.SubmissionBox, error) {
	var untyped []string
	for _, a := range s.annotations {
		if a.FractureType == "" {
			untyped = append(untyped, a.ID)
		}
	}
	if requireType && len(untyped) > 0 {
		return nil, &entity.ValidationError{Reason: "fracture type is required", IDs: untyped}
	}

	payload := make([]entity.SubmissionBox, 0, len(s.annotations))
	for _, a := range s.annotations {
		payload = append(payload, entity.NewSubmissionBox(a))
	}
	return payload, nil
}

// Commit вызывается после успешной отправки: черновики становятся детекциями ученика
func (s *Session) Commit(color string) []entity.Detection {
	out := make([]entity.Detection, 0, len(s.annotations))
	for i, a := range s.annotations {
		out = append(out, a.ToDetection(i, color))
	}
	s.Clear()
	return out
}

func (s *Session) index(id string) int {
	for i := range s.annotations {
		if s.annotations[i].ID == id {
			return i
		}
	}
	return -1
}
