package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/engine/metrics"
)

type ComparisonService struct {
	users       *UserService
	annotations *AnnotationService
	reference   port.ReferenceSource
	sink        port.SubmissionSink
	store       port.ComparisonStore
	renderer    port.OverlayRenderer
	calc        *metrics.Calculator
	log         logrus.FieldLogger

	RequireFractureType bool
	StudentColor        string

	// Submissions источник прошлых отправок для Revise; nil отключает пересмотр
	Submissions port.SubmissionSource
}

// ComparisonOutput содержит результат сравнения и снимок с нанесёнными рамками.
type ComparisonOutput struct {
	ID      string
	Result  entity.ComparisonResult
	Overlay []byte
}

// NewComparisonService создаёт сервис, который сверяет разметку ученика с эталоном.
func NewComparisonService(
	users *UserService,
	annotations *AnnotationService,
	reference port.ReferenceSource,
	sink port.SubmissionSink,
	store port.ComparisonStore,
	renderer port.OverlayRenderer,
	calc *metrics.Calculator,
	log logrus.FieldLogger,
) *ComparisonService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ComparisonService{
		users:        users,
		annotations:  annotations,
		reference:    reference,
		sink:         sink,
		store:        store,
		renderer:     renderer,
		calc:         calc,
		log:          log,
		StudentColor: "#3b82f6",
	}
}

// Submit отправляет разметку, получает эталон и сравнивает их.
// На время сравнения сессия изымается; при ошибке черновики возвращаются и отправку можно повторить.
func (s *ComparisonService) Submit(ctx context.Context, userID, chatID int64) (*ComparisonOutput, error) {
	if s.reference == nil {
		return nil, errors.New("reference source is not configured")
	}

	sess, err := s.annotations.take(userID)
	if err != nil {
		return nil, err
	}

	boxes, err := sess.draft.Submission(s.RequireFractureType)
	if err != nil {
		s.annotations.putBack(userID, sess)
		return nil, err
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		s.annotations.putBack(userID, sess)
		return nil, err
	}

	ai, err := s.reference.Detections(ctx, sess.imageID, sess.image)
	if err != nil {
		s.restore(ctx, userID, chatID, sess)
		return nil, fmt.Errorf("reference detections: %w", err)
	}

	if s.sink != nil {
		if err := s.sink.Submit(ctx, userID, sess.imageID, boxes); err != nil {
			s.restore(ctx, userID, chatID, sess)
			return nil, fmt.Errorf("submit annotations: %w", err)
		}
	}

	student := sess.draft.Commit(s.StudentColor)
	result := s.calc.Compare(student, ai)
	result.ImageID = sess.imageID

	out := &ComparisonOutput{Result: result}
	if s.store != nil {
		id, err := s.store.Save(ctx, userID, result)
		if err != nil {
			s.log.WithError(err).WithField("user_id", userID).Error("save comparison")
		} else {
			out.ID = id
			out.Result.ID = id
		}
	}

	if s.renderer != nil {
		overlay, err := s.renderer.RenderComparison(sess.image, &out.Result)
		if err != nil {
			s.log.WithError(err).WithField("image_id", sess.imageID).Warn("render overlay")
		} else {
			out.Overlay = overlay
		}
	}

	s.annotations.remember(userID, sess)
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("reset state after comparison")
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"image_id": out.Result.ImageID,
		"outcome":  out.Result.Outcome,
		"f1":       out.Result.Metrics.F1,
	}).Info("comparison done")

	return out, nil
}

// Revise открывает последний отправленный снимок заново с прошлой разметкой.
// Новая отправка сохраняется как отдельный результат.
func (s *ComparisonService) Revise(ctx context.Context, userID, chatID int64) ([]entity.Annotation, error) {
	if s.Submissions == nil {
		return nil, entity.ErrNoSubmission
	}

	last, ok := s.annotations.lastSubmitted(userID)
	if !ok {
		return nil, entity.ErrNoSubmission
	}

	boxes, err := s.Submissions.LastSubmission(ctx, userID, last.imageID)
	if err != nil {
		return nil, err
	}

	drafts, err := s.annotations.restore(ctx, userID, chatID, last, boxes)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"image_id": last.imageID,
		"boxes":    len(drafts),
	}).Info("submission reopened")
	return drafts, nil
}

func (s *ComparisonService) restore(ctx context.Context, userID, chatID int64, sess *imageSession) {
	s.annotations.putBack(userID, sess)
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateAnnotating); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("restore state")
	}
}
