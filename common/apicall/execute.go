package apicall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/narender/anime-explorer/common/apierrors"
)

// HandleSuccessResponse converts a transport response into a Success.
func HandleSuccessResponse[T any](resp *Response[T]) Success[T] {
	return Success[T]{
		Data:   resp.Data,
		Status: resp.Status,
	}
}

// HandleErrorResponse classifies a failed exchange. A non-empty reason in the
// response body makes it a business failure, anything else is generic.
func HandleErrorResponse[T any](ctx context.Context, logger Logger, reqErr RequestError) Result[T] {
	var body ErrorBody
	status := http.StatusInternalServerError
	if resp := reqErr.APIResponse(); resp != nil {
		if resp.Data != nil {
			body = *resp.Data
		}
		if resp.Status != 0 {
			status = resp.Status
		}
	}

	if body.Reason != "" {
		code := body.Code
		if code == "" {
			code = apierrors.ErrCodeUnknown
		}
		message := body.Message
		if message == "" {
			message = errorMessage(reqErr, status)
		}
		failure := apierrors.NewBusinessError(code, body.Reason, status, message).WithCause(reqErr)

		logAPIError(ctx, logger, status, reqErr,
			slog.String("message", reqErr.Error()),
			slog.String("reason", body.Reason),
			slog.String("code", body.Code))

		return Fail[T](failure)
	}

	code := reqErr.ErrorCode()
	if code == "" {
		code = apierrors.ErrCodeUnknown
	}
	failure := apierrors.NewGenericError(code, apierrors.ReasonGenericError, status, errorMessage(reqErr, status)).WithCause(reqErr)

	logAPIError(ctx, logger, status, reqErr, slog.String("message", reqErr.Error()))

	return Fail[T](failure)
}

// ExecuteRequest invokes requestFn exactly once and wraps its outcome.
func ExecuteRequest[T any](ctx context.Context, logger Logger, requestFn RequestFunc[T]) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = unexpected[T](ctx, logger, fmt.Errorf("request panicked: %v", r))
		}
	}()

	resp, err := requestFn(ctx)
	if err != nil {
		var reqErr RequestError
		if errors.As(err, &reqErr) {
			return HandleErrorResponse[T](ctx, logger, reqErr)
		}
		return unexpected[T](ctx, logger, err)
	}
	if resp == nil {
		return unexpected[T](ctx, logger, errors.New("request returned no response"))
	}

	return Ok(HandleSuccessResponse(resp).Data, resp.Status)
}

func unexpected[T any](ctx context.Context, logger Logger, err error) Result[T] {
	failure := apierrors.NewUnexpectedError(err)
	logError(ctx, logger, "Unexpected Error", err)
	return Fail[T](failure)
}

// The logger is a fire-and-forget collaborator: a misbehaving one must not
// break the pipeline.
func logAPIError(ctx context.Context, logger Logger, status int, reqErr RequestError, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	defer func() { _ = recover() }()
	logger.APIError(ctx, status, reqErr.RequestURL(), reqErr, attrs...)
}

func logError(ctx context.Context, logger Logger, msg string, err error) {
	if logger == nil {
		return
	}
	defer func() { _ = recover() }()
	logger.Error(ctx, msg, err)
}
