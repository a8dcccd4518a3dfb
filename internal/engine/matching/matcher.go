package matching

import (
	"sort"

	"fracture-tutor/internal/domain/entity"
)

// DefaultIoUThreshold минимальный IoU, при котором рамки считаются парой
const DefaultIoUThreshold = 0.3

// Result пары и рамки, оставшиеся без пары
type Result struct {
	Matches          []entity.Match
	UnmatchedStudent []entity.Unmatched
	UnmatchedAI      []entity.Unmatched
}

// Matcher жадное сопоставление один к одному
type Matcher struct {
	Threshold float64
}

// NewMatcher создаёт сопоставитель; отрицательный порог заменяется значением по умолчанию.
// Нулевой порог допустим: пару образуют любые пересекающиеся рамки.
func NewMatcher(threshold float64) *Matcher {
	if threshold < 0 {
		threshold = DefaultIoUThreshold
	}
	return &Matcher{Threshold: threshold}
}

type pair struct {
	student int
	ai      int
	iou     float64
}

// Match сопоставляет рамки: пары перебираются по убыванию IoU,
// берётся пара, оба участника которой ещё свободны.
// При равном IoU выигрывает пара, встретившаяся раньше во входных данных
// (меньший индекс рамки ученика, затем меньший индекс эталонной рамки).
func (m *Matcher) Match(student, ai []entity.Detection) Result {
	bestStudent := make([]float64, len(student))
	bestAI := make([]float64, len(ai))

	pairs := make([]pair, 0, len(student)*len(ai))
	for i := range student {
		for j := range ai {
			iou := ComputeIoU(student[i].BoundingBox, ai[j].BoundingBox)
			if iou > bestStudent[i] {
				bestStudent[i] = iou
			}
			if iou > bestAI[j] {
				bestAI[j] = iou
			}
			if iou > 0 && iou >= m.Threshold {
				pairs = append(pairs, pair{student: i, ai: j, iou: iou})
			}
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].iou > pairs[b].iou
	})

	usedStudent := make([]bool, len(student))
	usedAI := make([]bool, len(ai))
	matches := make([]entity.Match, 0, len(pairs))
	for _, p := range pairs {
		if usedStudent[p.student] || usedAI[p.ai] {
			continue
		}
		usedStudent[p.student] = true
		usedAI[p.ai] = true

		s, a := student[p.student], ai[p.ai]
		matches = append(matches, entity.Match{
			StudentID:         s.ID,
			AIID:              a.ID,
			IoU:               p.iou,
			FractureTypeMatch: entity.SameFractureType(s.FractureType, a.FractureType),
			StudentType:       s.FractureType,
			AIType:            a.FractureType,
			AIConfidence:      a.Confidence,
		})
		if len(matches) == len(student) || len(matches) == len(ai) {
			break
		}
	}

	return Result{
		Matches:          matches,
		UnmatchedStudent: unmatched(student, usedStudent, bestStudent),
		UnmatchedAI:      unmatched(ai, usedAI, bestAI),
	}
}

func unmatched(dets []entity.Detection, used []bool, best []float64) []entity.Unmatched {
	out := make([]entity.Unmatched, 0, len(dets))
	for i, d := range dets {
		if used[i] {
			continue
		}
		out = append(out, entity.Unmatched{Detection: d, BestIoU: best[i]})
	}
	return out
}
