package storage

import (
	"context"
	"sync"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// MemoryUserRepository хранит учеников в памяти; наружу отдаются только копии
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]entity.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]entity.User)}
}

// Get возвращает копию ученика; нового заводит в главном меню.
// Если ученик пишет из другого чата, запоминается последний.
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	stored, ok := r.users[userID]
	r.mu.RUnlock()
	if ok && stored.ChatID == chatID {
		return &stored, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok = r.users[userID]
	if !ok {
		stored = *entity.NewUser(userID, chatID)
	}
	stored.ChatID = chatID
	r.users[userID] = stored
	return &stored, nil
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()
	return nil
}

// UpdateState меняет состояние известного ученика; неизвестные игнорируются
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[userID]
	if !ok {
		return nil
	}
	stored.SetState(state)
	r.users[userID] = stored
	return nil
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)
