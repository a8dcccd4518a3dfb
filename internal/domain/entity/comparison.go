package entity

// Outcome категория итогового сравнения
type Outcome string

const (
	OutcomeBothNormal         Outcome = "both_normal"
	OutcomeBothFoundFractures Outcome = "both_found_fractures"
	OutcomeStudentOnly        Outcome = "student_only"
	OutcomeAIOnly             Outcome = "ai_only"
	OutcomeDisagreement       Outcome = "disagreement"
)

// Match пара из рамки ученика и эталонной рамки
type Match struct {
	StudentID         string       `json:"student_id"`
	AIID              string       `json:"ai_id"`
	IoU               float64      `json:"iou"`
	FractureTypeMatch bool         `json:"fracture_type_match"`
	StudentType       FractureType `json:"student_fracture_type,omitempty"`
	AIType            FractureType `json:"ai_fracture_type,omitempty"`
	AIConfidence      *float64     `json:"ai_confidence,omitempty"`
}

// Unmatched рамка без пары и лучший IoU, который для неё нашёлся
type Unmatched struct {
	Detection
	BestIoU float64 `json:"best_iou"`
}

// Metrics метрики обнаружения
type Metrics struct {
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1           float64 `json:"f1_score"`
	AvgIoU       float64 `json:"avg_iou"`
	IoUThreshold float64 `json:"iou_threshold"`
}

// Feedback текстовый разбор результата для ученика
type Feedback struct {
	Overall                   string   `json:"overall"`
	DetectionPerformance      string   `json:"detection_performance"`
	ClassificationPerformance string   `json:"classification_performance"`
	Suggestions               []string `json:"suggestions"`
}

// ComparisonResult итог сравнения разметки ученика с эталоном по одному снимку
type ComparisonResult struct {
	ID                     string      `json:"id,omitempty"`
	ImageID                string      `json:"image_id,omitempty"`
	StudentDetections      []Detection `json:"student_detections"`
	AIDetections           []Detection `json:"ai_detections"`
	Matches                []Match     `json:"matches"`
	UnmatchedStudent       []Unmatched `json:"unmatched_student"`
	UnmatchedAI            []Unmatched `json:"unmatched_ai"`
	Metrics                Metrics     `json:"iou_metrics"`
	ClassificationAccuracy float64     `json:"classification_accuracy"`
	Outcome                Outcome     `json:"outcome"`
	Feedback               Feedback    `json:"feedback"`
}

// CorrectTypes считает пары с совпавшим типом перелома
func (r *ComparisonResult) CorrectTypes() int {
	n := 0
	for _, m := range r.Matches {
		if m.FractureTypeMatch {
			n++
		}
	}
	return n
}
