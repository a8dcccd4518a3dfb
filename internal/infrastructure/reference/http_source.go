package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/domain/port"
)

// DefaultColor цвет эталонных рамок, если вызывающая сторона не задала свой
const DefaultColor = "#ef4444"

const maxErrorBody = 4 << 10

// HTTPSource получает эталонные детекции у внешнего сервиса распознавания
type HTTPSource struct {
	baseURL string
	client  *http.Client
	color   string
}

// NewHTTPSource создаёт клиент; timeout <= 0 означает 30 секунд
func NewHTTPSource(baseURL string, timeout time.Duration, color string) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if color == "" {
		color = DefaultColor
	}
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		color:   color,
	}
}

// Detections отправляет снимок сервису и разбирает массив эталонных записей.
// Записи с источником student пропускаются; повторяющиеся ID считаются ошибкой сервиса.
func (s *HTTPSource) Detections(ctx context.Context, imageID string, imageData []byte) ([]entity.Detection, error) {
	endpoint, err := url.JoinPath(s.baseURL, "detections")
	if err != nil {
		return nil, fmt.Errorf("build reference url: %w", err)
	}
	endpoint += "?image_id=" + url.QueryEscape(imageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("build reference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request reference detections: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("reference service returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var records []entity.ReferenceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode reference detections: %w", err)
	}

	detections := make([]entity.Detection, 0, len(records))
	seen := make(map[string]bool, len(records))
	var duplicates []string
	for i, rec := range records {
		if rec.Source == entity.SourceStudent {
			continue
		}
		d := rec.ToDetection(i, s.color)
		if seen[d.ID] {
			duplicates = append(duplicates, d.ID)
			continue
		}
		seen[d.ID] = true
		detections = append(detections, d)
	}
	if len(duplicates) > 0 {
		return nil, &entity.ValidationError{Reason: "duplicate reference detection id", IDs: duplicates}
	}
	return detections, nil
}

// Проверка реализации интерфейса
var _ port.ReferenceSource = (*HTTPSource)(nil)
