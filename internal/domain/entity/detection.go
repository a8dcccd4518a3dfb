package entity

// Source происхождение детекции
type Source string

const (
	SourceStudent Source = "student" // Рамка ученика
	SourceAI      Source = "ai"      // Эталонная рамка модели
)

// Detection неизменяемая рамка: отправленная учеником или эталонная
type Detection struct {
	ID           string       `json:"id"`
	BoundingBox               // рамка в пикселях изображения
	Source       Source       `json:"source"`
	Label        string       `json:"label"`
	FractureType FractureType `json:"fracture_type,omitempty"`
	Confidence   *float64     `json:"confidence,omitempty"` // уверенность модели [0,1]
	Color        string       `json:"color,omitempty"`      // задаётся вызывающей стороной
}
