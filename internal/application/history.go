package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/engine/history"
)

type HistoryService struct {
	store port.ComparisonStore
	log   logrus.FieldLogger
}

// NewHistoryService создаёт сервис сводной статистики ученика
func NewHistoryService(store port.ComparisonStore, log logrus.FieldLogger) *HistoryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HistoryService{store: store, log: log}
}

// Overall собирает историю ученика и считает сводную статистику.
// Неудачно загруженные элементы пропускаются и попадают в лог.
func (s *HistoryService) Overall(ctx context.Context, userID int64) (entity.OverallStats, error) {
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		return entity.OverallStats{}, err
	}

	results, failures := history.Collect(ctx, ids, s.store.Get)
	for _, f := range failures {
		s.log.WithError(f.Err).WithFields(logrus.Fields{
			"user_id":       userID,
			"comparison_id": f.ID,
		}).Warn("skip history item")
	}

	return history.Aggregate(results), nil
}
