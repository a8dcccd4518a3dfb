package reference

import (
	"context"
	"sync"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// StaticSource эталон, заданный заранее по ID снимка (для тестов и офлайн-режима)
type StaticSource struct {
	mu   sync.RWMutex
	sets map[string][]entity.Detection
}

// NewStaticSource создаёт пустой источник
func NewStaticSource() *StaticSource {
	return &StaticSource{sets: make(map[string][]entity.Detection)}
}

// Set задаёт эталон для снимка
func (s *StaticSource) Set(imageID string, detections []entity.Detection) {
	s.mu.Lock()
	s.sets[imageID] = detections
	s.mu.Unlock()
}

// Detections возвращает заданный эталон; неизвестный снимок считается снимком без переломов
func (s *StaticSource) Detections(ctx context.Context, imageID string, imageData []byte) ([]entity.Detection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Detection, len(s.sets[imageID]))
	copy(out, s.sets[imageID])
	return out, nil
}

var _ port.ReferenceSource = (*StaticSource)(nil)
