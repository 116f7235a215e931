package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the failure value produced by the request pipeline and by the
// service layers. Kind tells business rejections apart from generic failures.
type AppError struct {
	Kind    ErrorKind      `json:"kind"`
	Code    string         `json:"code"`
	Reason  string         `json:"reason"`
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
	Err     error          `json:"-"` // Original underlying error (optional)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AppError(Kind=%s, Code=%s, Reason=%s, Status=%d, Message=%s, Cause=%v)",
			e.Kind, e.Code, e.Reason, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("AppError(Kind=%s, Code=%s, Reason=%s, Status=%d, Message=%s)",
		e.Kind, e.Code, e.Reason, e.Status, e.Message)
}

// Unwrap provides compatibility for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsBusiness reports whether the failure was signalled by the server with a reason.
func (e *AppError) IsBusiness() bool {
	return e.Kind == KindBusiness
}

// IsGeneric reports whether the failure is a transport or unexpected error.
func (e *AppError) IsGeneric() bool {
	return e.Kind == KindGeneric
}

// HTTPStatus returns the status to answer with, 500 when none was recorded.
func (e *AppError) HTTPStatus() int {
	if e.Status < 100 || e.Status > 599 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// WithContext adds a detail that is exposed in error responses.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause records the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewBusinessError creates a failure for a domain-level rejection.
func NewBusinessError(code, reason string, status int, message string) *AppError {
	return &AppError{
		Kind:    KindBusiness,
		Code:    code,
		Reason:  reason,
		Status:  status,
		Message: message,
	}
}

// NewGenericError creates a failure for transport or unexpected errors.
func NewGenericError(code, reason string, status int, message string) *AppError {
	return &AppError{
		Kind:    KindGeneric,
		Code:    code,
		Reason:  reason,
		Status:  status,
		Message: message,
	}
}

// NewUnexpectedError is the generic failure used for non API-shaped errors.
func NewUnexpectedError(cause error) *AppError {
	return NewGenericError(ErrCodeUnexpected, ReasonUnexpectedError,
		http.StatusInternalServerError, "Unexpected error").WithCause(cause)
}

// As extracts an *AppError from err's tree.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
