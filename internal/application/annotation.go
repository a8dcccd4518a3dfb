package app

import (
	"context"
	"fmt"
	"sync"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/engine/drawing"
	"fracture-tutor/internal/engine/geometry"
)

// ChatGrid поверхность чата: координаты рамок задаются в процентах от сторон снимка
var ChatGrid = entity.Rect{Width: 100, Height: 100}

// imageSession снимок, открытый учеником, и его черновая разметка
type imageSession struct {
	imageID string
	image   []byte
	native  entity.Size
	draft   *drawing.Session
}

// AnnotationService ведёт черновую разметку учеников: по одной сессии на ученика
type AnnotationService struct {
	users     *UserService
	inspector port.ImageInspector
	minSize   float64
	opts      []drawing.Option

	mu        sync.RWMutex
	sessions  map[int64]*imageSession
	submitted map[int64]*imageSession
}

// NewAnnotationService создаёт сервис разметки
func NewAnnotationService(users *UserService, inspector port.ImageInspector, minSize float64, opts ...drawing.Option) *AnnotationService {
	return &AnnotationService{
		users:     users,
		inspector: inspector,
		minSize:   minSize,
		opts:      opts,
		sessions:  make(map[int64]*imageSession),
		submitted: make(map[int64]*imageSession),
	}
}

// OpenImage принимает снимок и начинает новую разметку; прежние черновики отбрасываются
func (s *AnnotationService) OpenImage(ctx context.Context, userID, chatID int64, imageID string, image []byte) (*entity.User, entity.Size, error) {
	native, err := s.inspector.NativeSize(image)
	if err != nil {
		return nil, entity.Size{}, fmt.Errorf("inspect image: %w", err)
	}

	s.mu.Lock()
	s.sessions[userID] = &imageSession{
		imageID: imageID,
		image:   image,
		native:  native,
		draft:   drawing.NewSession(s.minSize, s.opts...),
	}
	s.mu.Unlock()

	user, err := s.users.SetState(ctx, userID, chatID, entity.StateAnnotating)
	if err != nil {
		return nil, entity.Size{}, err
	}
	return user, native, nil
}

// DrawBox проводит жест от from до to на поверхности display и фиксирует рамку.
// false, если рамка отброшена как слишком маленькая.
func (s *AnnotationService) DrawBox(userID int64, from, to entity.Point, display entity.Rect) (entity.Annotation, bool, error) {
	var (
		ann entity.Annotation
		ok  bool
	)
	err := s.withSession(userID, func(sess *imageSession) error {
		start, err := geometry.ToImageSpace(from, display, sess.native)
		if err != nil {
			return err
		}
		end, err := geometry.ToImageSpace(to, display, sess.native)
		if err != nil {
			return err
		}

		sess.draft.Begin(start)
		sess.draft.Update(end)
		ann, ok = sess.draft.End()
		return nil
	})
	return ann, ok, err
}

// SetFractureType задаёт тип перелома черновику
func (s *AnnotationService) SetFractureType(userID int64, annotationID string, t entity.FractureType) error {
	return s.withSession(userID, func(sess *imageSession) error {
		return sess.draft.SetFractureType(annotationID, t)
	})
}

// SetNotes задаёт заметку черновику
func (s *AnnotationService) SetNotes(userID int64, annotationID, notes string) error {
	return s.withSession(userID, func(sess *imageSession) error {
		return sess.draft.SetNotes(annotationID, notes)
	})
}

// Remove удаляет черновик
func (s *AnnotationService) Remove(userID int64, annotationID string) error {
	return s.withSession(userID, func(sess *imageSession) error {
		if !sess.draft.Remove(annotationID) {
			return entity.ErrAnnotationNotFound
		}
		return nil
	})
}

// List возвращает черновики ученика
func (s *AnnotationService) List(userID int64) ([]entity.Annotation, error) {
	var out []entity.Annotation
	err := s.readSession(userID, func(sess *imageSession) error {
		out = sess.draft.Annotations()
		return nil
	})
	return out, err
}

// NativeSize возвращает размер открытого снимка
func (s *AnnotationService) NativeSize(userID int64) (entity.Size, error) {
	var size entity.Size
	err := s.readSession(userID, func(sess *imageSession) error {
		size = sess.native
		return nil
	})
	return size, err
}

// Discard закрывает снимок без отправки
func (s *AnnotationService) Discard(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// remember запоминает последний отправленный снимок ученика без черновиков
func (s *AnnotationService) remember(userID int64, sess *imageSession) {
	s.mu.Lock()
	s.submitted[userID] = &imageSession{imageID: sess.imageID, image: sess.image, native: sess.native}
	s.mu.Unlock()
}

func (s *AnnotationService) lastSubmitted(userID int64) (*imageSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.submitted[userID]
	return sess, ok
}

// restore открывает отправленный снимок заново с черновиками из отправки
func (s *AnnotationService) restore(ctx context.Context, userID, chatID int64, last *imageSession, boxes []entity.SubmissionBox) ([]entity.Annotation, error) {
	draft := drawing.NewSession(s.minSize, s.opts...)
	for _, b := range boxes {
		if _, err := draft.Add(b.ToAnnotation()); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.sessions[userID] = &imageSession{
		imageID: last.imageID,
		image:   last.image,
		native:  last.native,
		draft:   draft,
	}
	s.mu.Unlock()

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateAnnotating); err != nil {
		return nil, err
	}
	return draft.Annotations(), nil
}

// take изымает сессию ученика
func (s *AnnotationService) take(userID int64) (*imageSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, entity.ErrNoSession
	}
	delete(s.sessions, userID)
	return sess, nil
}

// putBack возвращает изъятую сессию, если ученик не открыл новый снимок
func (s *AnnotationService) putBack(userID int64, sess *imageSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		s.sessions[userID] = sess
	}
}

func (s *AnnotationService) withSession(userID int64, fn func(*imageSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return entity.ErrNoSession
	}
	return fn(sess)
}

func (s *AnnotationService) readSession(userID int64, fn func(*imageSession) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return entity.ErrNoSession
	}
	return fn(sess)
}
