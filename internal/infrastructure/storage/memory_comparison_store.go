package storage

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// ErrComparisonNotFound результат с таким ID не сохранялся
var ErrComparisonNotFound = errors.New("comparison not found")

type submission struct {
	userID  int64
	imageID string
	boxes   []entity.SubmissionBox
}

// MemoryComparisonStore in-memory история сравнений и отправленной разметки
type MemoryComparisonStore struct {
	mu          sync.RWMutex
	seq         int64
	results     map[string]entity.ComparisonResult
	byUser      map[int64][]string
	submissions []submission
}

// NewMemoryComparisonStore создаёт пустое хранилище
func NewMemoryComparisonStore() *MemoryComparisonStore {
	return &MemoryComparisonStore{
		results: make(map[string]entity.ComparisonResult),
		byUser:  make(map[int64][]string),
	}
}

// Save сохраняет результат и присваивает ему ID
func (s *MemoryComparisonStore) Save(ctx context.Context, userID int64, result entity.ComparisonResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := strconv.FormatInt(s.seq, 10)
	result.ID = id
	s.results[id] = result
	s.byUser[userID] = append(s.byUser[userID], id)
	return id, nil
}

// List возвращает ID результатов ученика в порядке сохранения
func (s *MemoryComparisonStore) List(ctx context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.byUser[userID]))
	copy(ids, s.byUser[userID])
	return ids, nil
}

// Get возвращает результат по ID
func (s *MemoryComparisonStore) Get(ctx context.Context, id string) (*entity.ComparisonResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return nil, ErrComparisonNotFound
	}
	return &result, nil
}

// Submit запоминает отправленную разметку
func (s *MemoryComparisonStore) Submit(ctx context.Context, userID int64, imageID string, boxes []entity.SubmissionBox) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]entity.SubmissionBox, len(boxes))
	copy(stored, boxes)
	s.submissions = append(s.submissions, submission{userID: userID, imageID: imageID, boxes: stored})
	return nil
}

// LastSubmission возвращает последнюю разметку, отправленную учеником для снимка
func (s *MemoryComparisonStore) LastSubmission(ctx context.Context, userID int64, imageID string) ([]entity.SubmissionBox, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.submissions) - 1; i >= 0; i-- {
		sub := s.submissions[i]
		if sub.userID == userID && sub.imageID == imageID {
			out := make([]entity.SubmissionBox, len(sub.boxes))
			copy(out, sub.boxes)
			return out, nil
		}
	}
	return nil, entity.ErrNoSubmission
}

var (
	_ port.ComparisonStore  = (*MemoryComparisonStore)(nil)
	_ port.SubmissionSink   = (*MemoryComparisonStore)(nil)
	_ port.SubmissionSource = (*MemoryComparisonStore)(nil)
)
