package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// SubmissionBox запись разметки для внешнего API, все значения целые
type SubmissionBox struct {
	XMin         int          `json:"x_min"`
	YMin         int          `json:"y_min"`
	XMax         int          `json:"x_max"`
	YMax         int          `json:"y_max"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	FractureType FractureType `json:"fracture_type"`
	Notes        string       `json:"notes"`
}

// NewSubmissionBox округляет рамку вниз до целых пикселей
func NewSubmissionBox(a Annotation) SubmissionBox {
	x := int(math.Floor(a.X))
	y := int(math.Floor(a.Y))
	w := int(math.Floor(a.Width))
	h := int(math.Floor(a.Height))
	return SubmissionBox{
		XMin:         x,
		YMin:         y,
		XMax:         x + w,
		YMax:         y + h,
		Width:        w,
		Height:       h,
		FractureType: a.FractureType,
		Notes:        a.Notes,
	}
}

// RecordID идентификатор записи внешнего API: число, строка или null
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// ToAnnotation восстанавливает черновик из отправленной записи; ID назначает сессия
func (b SubmissionBox) ToAnnotation() Annotation {
	return Annotation{
		BoundingBox: BoundingBox{
			X:      float64(b.XMin),
			Y:      float64(b.YMin),
			Width:  float64(b.Width),
			Height: float64(b.Height),
		},
		FractureType: b.FractureType,
		Notes:        b.Notes,
	}
}

// ReferenceRecord эталонная детекция в формате внешнего API
type ReferenceRecord struct {
	ID           RecordID     `json:"id"`
	Source       Source       `json:"source"`
	ClassName    string       `json:"class_name"`
	FractureType FractureType `json:"fracture_type,omitempty"`
	Confidence   *float64     `json:"confidence"`
	XMin         float64      `json:"x_min"`
	YMin         float64      `json:"y_min"`
	XMax         float64      `json:"x_max"`
	YMax         float64      `json:"y_max"`
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
}

// ToDetection превращает запись API в детекцию; пустой источник считается эталонным.
// Запись без id получает позиционный ID ai-<index+1>.
func (r ReferenceRecord) ToDetection(index int, color string) Detection {
	id := string(r.ID)
	if id == "" {
		id = fmt.Sprintf("ai-%d", index+1)
	}
	source := r.Source
	if source == "" {
		source = SourceAI
	}
	width, height := r.Width, r.Height
	if width == 0 && r.XMax > r.XMin {
		width = r.XMax - r.XMin
	}
	if height == 0 && r.YMax > r.YMin {
		height = r.YMax - r.YMin
	}
	fractureType := r.FractureType
	if fractureType == "" {
		fractureType = FractureType(r.ClassName)
	}
	label := r.ClassName
	if label == "" {
		label = string(fractureType)
	}
	return Detection{
		ID:           id,
		BoundingBox:  BoundingBox{X: r.XMin, Y: r.YMin, Width: width, Height: height},
		Source:       source,
		Label:        label,
		FractureType: fractureType,
		Confidence:   r.Confidence,
		Color:        color,
	}
}
