package app

import (
	"context"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// UserService ведёт ученика по шагам тренажёра: меню, снимок, разметка, сравнение
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Get возвращает ученика, при первом обращении заводит его
func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState переводит ученика на шаг state и возвращает сохранённую копию
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	learner, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	learner.SetState(state)
	if err := s.repo.Save(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// BeginCheck ждёт от ученика новый снимок
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

// Cancel бросает текущий снимок и возвращает ученика в меню
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Reset возвращает известного ученика в меню, не заводя нового
func (s *UserService) Reset(ctx context.Context, userID int64) error {
	return s.repo.UpdateState(ctx, userID, entity.StateMainMenu)
}
