package apicall

import (
	"net/http"

	"github.com/narender/anime-explorer/common/either"
)

// Sequence collects the data of every result in order. The first failure
// is returned as is and later results are not inspected.
func Sequence[T any](results []Result[T]) Result[[]T] {
	data := make([]T, 0, len(results))
	for _, r := range results {
		if failure, ok := r.LeftValue(); ok {
			return Fail[[]T](failure)
		}
		success, _ := r.RightValue()
		data = append(data, success.Data)
	}
	return Ok(data, http.StatusOK)
}

// MapEither replaces the data of a successful result, keeping its status.
// transform is not called for failures.
func MapEither[T, U any](r Result[T], transform func(T) U) Result[U] {
	return either.Map(r, func(s Success[T]) Success[U] {
		return Success[U]{
			Data:   transform(s.Data),
			Status: s.Status,
		}
	})
}
