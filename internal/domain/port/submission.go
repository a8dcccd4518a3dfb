package port

import (
	"context"

	"fracture-tutor/internal/domain/entity"
)

// SubmissionSink принимает разметку ученика (пустой список означает «переломов нет»)
type SubmissionSink interface {
	// Submit сохраняет разметку ученика для снимка
	Submit(ctx context.Context, userID int64, imageID string, boxes []entity.SubmissionBox) error
}

// SubmissionSource отдаёт ранее отправленную разметку для её пересмотра
type SubmissionSource interface {
	// LastSubmission возвращает последнюю отправку ученика по снимку или entity.ErrNoSubmission
	LastSubmission(ctx context.Context, userID int64, imageID string) ([]entity.SubmissionBox, error)
}

// ComparisonStore история сравнений ученика
type ComparisonStore interface {
	// Save сохраняет результат и возвращает его идентификатор
	Save(ctx context.Context, userID int64, result entity.ComparisonResult) (string, error)

	// List возвращает идентификаторы результатов ученика в порядке сохранения
	List(ctx context.Context, userID int64) ([]string, error)

	// Get возвращает результат по идентификатору
	Get(ctx context.Context, id string) (*entity.ComparisonResult, error)
}
