// Package apicall runs outbound API calls and turns their outcome into an
// either.Either: Right carries the decoded payload and status, Left carries a
// classified *apierrors.AppError. Nothing in this package panics or returns
// a Go error to the caller.
package apicall

import (
	"context"
	"log/slog"

	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/either"
)

// Success is the payload of a successful call.
type Success[T any] struct {
	Data   T   `json:"data"`
	Status int `json:"status"`
}

// Result is the outcome of a call.
type Result[T any] = either.Either[*apierrors.AppError, Success[T]]

// Response is what a transport returns for a successful exchange.
type Response[T any] struct {
	Data   T
	Status int
}

// RequestFunc performs one call. Cancellation and timeouts belong to the
// transport and to ctx, not to the pipeline.
type RequestFunc[T any] func(ctx context.Context) (*Response[T], error)

// ErrorBody is the error document returned by the remote API.
type ErrorBody struct {
	Code           string `json:"code,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Source         string `json:"source,omitempty"`
	HideModalError bool   `json:"hideModalError,omitempty"`
	Message        string `json:"message,omitempty"`
}

// ErrorResponse is the failed response as seen by the transport.
type ErrorResponse struct {
	Data   *ErrorBody
	Status int
}

// RequestError is implemented by transport errors that describe an HTTP
// exchange. Errors that do not implement it are treated as unexpected.
type RequestError interface {
	error
	// APIResponse returns the failed response, nil when none was received.
	APIResponse() *ErrorResponse
	// RequestSent reports whether a request was built and sent.
	RequestSent() bool
	// RequestURL is the target of the request, empty when unknown.
	RequestURL() string
	// ErrorCode is the transport's own error code, empty when unknown.
	ErrorCode() string
}

// Logger receives every failure seen by the pipeline.
type Logger interface {
	APIError(ctx context.Context, status int, url string, err error, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, err error, attrs ...slog.Attr)
}

// Ok builds a successful result.
func Ok[T any](data T, status int) Result[T] {
	return either.Right[*apierrors.AppError](Success[T]{Data: data, Status: status})
}

// Fail builds a failed result.
func Fail[T any](failure *apierrors.AppError) Result[T] {
	return either.Left[*apierrors.AppError, Success[T]](failure)
}

// Unwrap converts a result back into Go's (value, error) pair.
func Unwrap[T any](r Result[T]) (Success[T], *apierrors.AppError) {
	if failure, ok := r.LeftValue(); ok {
		return Success[T]{}, failure
	}
	success, _ := r.RightValue()
	return success, nil
}
