package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	app "fracture-tutor/internal/application"
	"fracture-tutor/internal/domain/entity"
)

var (
	errBoxArgs   = errors.New("ожидается четыре числа: /box x1 y1 x2 y2")
	errBoxRange  = errors.New("координаты задаются в процентах от 0 до 100")
	errIndexArgs = errors.New("укажите номер рамки из /list")
)

// parseBox разбирает аргументы /box: два угла рамки в процентах от сторон снимка
func parseBox(args string) (entity.Point, entity.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(args, ",", " "))
	if len(fields) != 4 {
		return entity.Point{}, entity.Point{}, errBoxArgs
	}

	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return entity.Point{}, entity.Point{}, errBoxArgs
		}
		if n < 0 || n > 100 {
			return entity.Point{}, entity.Point{}, errBoxRange
		}
		v[i] = n
	}

	return entity.Point{X: v[0], Y: v[1]}, entity.Point{X: v[2], Y: v[3]}, nil
}

// parseIndexed разбирает «n остаток» и возвращает ID черновика с номером n (с единицы)
func parseIndexed(args string, drafts []entity.Annotation) (string, string, error) {
	args = strings.TrimSpace(args)
	head, rest, _ := strings.Cut(args, " ")
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 || n > len(drafts) {
		return "", "", errIndexArgs
	}
	return drafts[n-1].ID, strings.TrimSpace(rest), nil
}

func formatTypes() string {
	names := make([]string, len(entity.FractureTypes))
	for i, t := range entity.FractureTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func formatDraft(i int, a entity.Annotation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. x=%.0f y=%.0f %.0f×%.0f", i+1, a.X, a.Y, a.Width, a.Height)
	if a.FractureType != "" {
		fmt.Fprintf(&sb, " — %s", a.FractureType)
	} else {
		sb.WriteString(" — тип не указан")
	}
	if a.Notes != "" {
		fmt.Fprintf(&sb, " (%s)", a.Notes)
	}
	return sb.String()
}

func formatDrafts(drafts []entity.Annotation, native entity.Size) string {
	if len(drafts) == 0 {
		return fmt.Sprintf("🗂 Рамок пока нет (снимок %.0f×%.0f). Если переломов нет, просто отправьте /submit.", native.Width, native.Height)
	}

	lines := make([]string, 0, len(drafts)+1)
	lines = append(lines, fmt.Sprintf("🗂 Ваши рамки (снимок %.0f×%.0f):", native.Width, native.Height))
	for i, a := range drafts {
		lines = append(lines, formatDraft(i, a))
	}
	return strings.Join(lines, "\n")
}

// draftNumbers переводит ID черновиков в их номера из /list
func draftNumbers(ids []string, drafts []entity.Annotation) string {
	nums := make([]string, 0, len(ids))
	for _, id := range ids {
		for i, a := range drafts {
			if a.ID == id {
				nums = append(nums, strconv.Itoa(i+1))
				break
			}
		}
	}
	return strings.Join(nums, ", ")
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func formatResult(out *app.ComparisonOutput) string {
	r := out.Result
	var sb strings.Builder

	sb.WriteString("📊 Результат сравнения\n\n")
	sb.WriteString(r.Feedback.Overall)
	sb.WriteString("\n")

	if r.Feedback.DetectionPerformance != "" {
		sb.WriteString("\n" + r.Feedback.DetectionPerformance + "\n")
	}
	if r.Feedback.ClassificationPerformance != "" {
		sb.WriteString(r.Feedback.ClassificationPerformance + "\n")
	}

	fmt.Fprintf(&sb, "\nВаших рамок: %d, рамок модели: %d, совпало: %d\n",
		len(r.StudentDetections), len(r.AIDetections), len(r.Matches))
	fmt.Fprintf(&sb, "Precision: %s, Recall: %s, F1: %s\n",
		percent(r.Metrics.Precision), percent(r.Metrics.Recall), percent(r.Metrics.F1))

	if len(r.Feedback.Suggestions) > 0 {
		sb.WriteString("\n💡 Советы:\n")
		for _, s := range r.Feedback.Suggestions {
			sb.WriteString("• " + s + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatStats(s entity.OverallStats) string {
	if s.TotalImages == 0 {
		return "📈 Истории пока нет. Начните с /check."
	}
	return fmt.Sprintf(`📈 Ваша статистика

Снимков проверено: %d
Средний F1: %.1f%%
Средняя точность классификации: %.1f%%
Совпавших рамок: %d
Ваших рамок: %d
Рамок модели: %d`,
		s.TotalImages, s.AvgF1, s.AvgClassificationAccuracy,
		s.TotalMatches, s.TotalStudentDetections, s.TotalAIDetections)
}
