package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u1, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, u1.State)

	u1.SetState(entity.StateAnnotating)
	require.NoError(t, repo.Save(ctx, u1))

	u2, err := repo.Get(ctx, 1, 99)
	require.NoError(t, err)
	require.Equal(t, entity.StateAnnotating, u2.State)
	require.Equal(t, int64(99), u2.ChatID)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	u.SetState(entity.StateProcessing)

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, again.State)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpdateState(ctx, 5, entity.StateAnnotating))

	u, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, u.State)

	require.NoError(t, repo.UpdateState(ctx, 5, entity.StateAnnotating))
	u, err = repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateAnnotating, u.State)
}
