package history

import (
	"context"
	"errors"

	"fracture-tutor/internal/domain/entity"
)

// FetchFunc загружает результат сравнения по идентификатору
type FetchFunc func(ctx context.Context, id string) (*entity.ComparisonResult, error)

// ErrEmptyResult источник не вернул ни результата, ни ошибки
var ErrEmptyResult = errors.New("history item has no result")

// Failure ошибка загрузки одного элемента истории
type Failure struct {
	ID  string
	Err error
}

// Collect загружает результаты по одному, пропуская неудачные элементы.
// После отмены контекста оставшиеся элементы записываются как неудачные.
func Collect(ctx context.Context, ids []string, fetch FetchFunc) ([]entity.ComparisonResult, []Failure) {
	results := make([]entity.ComparisonResult, 0, len(ids))
	var failures []Failure

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for _, rest := range ids[i:] {
				failures = append(failures, Failure{ID: rest, Err: err})
			}
			break
		}

		res, err := fetch(ctx, id)
		if err != nil {
			failures = append(failures, Failure{ID: id, Err: err})
			continue
		}
		if res == nil {
			failures = append(failures, Failure{ID: id, Err: ErrEmptyResult})
			continue
		}
		results = append(results, *res)
	}

	return results, failures
}
