package app

import (
	"context"
	"errors"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

type fakeInspector struct {
	size entity.Size
	err  error
}

func (f fakeInspector) NativeSize(imageData []byte) (entity.Size, error) {
	return f.size, f.err
}

type failingSource struct{}

func (failingSource) Detections(ctx context.Context, imageID string, imageData []byte) ([]entity.Detection, error) {
	return nil, errors.New("reference unavailable")
}

type fakeRenderer struct {
	out   []byte
	err   error
	calls int
}

func (f *fakeRenderer) RenderComparison(imageData []byte, result *entity.ComparisonResult) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

type brokenStore struct {
	port.ComparisonStore
	broken map[string]bool
}

func (s brokenStore) Get(ctx context.Context, id string) (*entity.ComparisonResult, error) {
	if s.broken[id] {
		return nil, errors.New("corrupted record")
	}
	return s.ComparisonStore.Get(ctx, id)
}

type failingSaveRepo struct {
	port.UserRepository
	failOn entity.UserState
}

func (r failingSaveRepo) Save(ctx context.Context, user *entity.User) error {
	if user.State == r.failOn {
		return errors.New("storage is read-only")
	}
	return r.UserRepository.Save(ctx, user)
}

var (
	_ port.ImageInspector  = fakeInspector{}
	_ port.ReferenceSource = failingSource{}
	_ port.OverlayRenderer = (*fakeRenderer)(nil)
)
