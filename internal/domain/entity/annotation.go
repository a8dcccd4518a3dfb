package entity

import (
	"fmt"
	"strings"
)

// FractureType тип перелома, выбранный учеником или моделью
type FractureType string

const (
	FractureComminuted FractureType = "comminuted" // Оскольчатый
	FractureGreenstick FractureType = "greenstick" // По типу «зелёной ветки»
	FractureOblique    FractureType = "oblique"    // Косой
	FractureSpiral     FractureType = "spiral"     // Спиральный
	FractureTransverse FractureType = "transverse" // Поперечный
)

// FractureTypes перечисляет известные типы в порядке отображения
var FractureTypes = []FractureType{
	FractureComminuted,
	FractureGreenstick,
	FractureOblique,
	FractureSpiral,
	FractureTransverse,
}

// ParseFractureType разбирает тип перелома без учёта регистра
func ParseFractureType(s string) (FractureType, error) {
	value := FractureType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range FractureTypes {
		if t == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown fracture type %q", s)
}

// SameFractureType сравнивает типы без учёта регистра, пустой тип не совпадает ни с чем
func SameFractureType(a, b FractureType) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(string(a), string(b))
}

// Annotation черновая рамка ученика
type Annotation struct {
	ID           string       `json:"id"`
	BoundingBox               // рамка в пикселях изображения
	FractureType FractureType `json:"fracture_type,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// ToDetection превращает черновик в отправленную детекцию ученика
func (a Annotation) ToDetection(index int, color string) Detection {
	return Detection{
		ID:           a.ID,
		BoundingBox:  a.BoundingBox,
		Source:       SourceStudent,
		Label:        fmt.Sprintf("Student #%d", index+1),
		FractureType: a.FractureType,
		Color:        color,
	}
}
