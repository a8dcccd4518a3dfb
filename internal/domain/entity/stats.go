package entity

// OverallStats сводная статистика по истории сравнений
type OverallStats struct {
	TotalImages               int     `json:"total_images"`
	AvgF1                     float64 `json:"avg_f1"`                      // в процентах
	AvgClassificationAccuracy float64 `json:"avg_classification_accuracy"` // в процентах
	TotalMatches              int     `json:"total_matches"`
	TotalStudentDetections    int     `json:"total_student_detections"`
	TotalAIDetections         int     `json:"total_ai_detections"`
}
