package port

import (
	"context"

	"fracture-tutor/internal/domain/entity"
)

// UserRepository хранилище учеников и их состояния в диалоге
type UserRepository interface {
	// Get возвращает ученика по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние ученика
	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет состояние ученика, если он уже известен
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
