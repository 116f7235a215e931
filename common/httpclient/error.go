package httpclient

import (
	"fmt"

	"github.com/narender/anime-explorer/common/apicall"
)

// Error is a failed exchange. It implements apicall.RequestError.
type Error struct {
	url      string
	sent     bool
	code     string
	response *apicall.ErrorResponse
	cause    error
}

var _ apicall.RequestError = (*Error)(nil)

func (e *Error) Error() string {
	switch {
	case e.response != nil:
		return fmt.Sprintf("GET %s: status %d", e.url, e.response.Status)
	case e.cause != nil:
		return fmt.Sprintf("GET %s: %v", e.url, e.cause)
	default:
		return fmt.Sprintf("GET %s failed", e.url)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// APIResponse returns the failed response, nil when none was received.
func (e *Error) APIResponse() *apicall.ErrorResponse { return e.response }

// RequestSent reports whether the request left the client.
func (e *Error) RequestSent() bool { return e.sent }

// RequestURL returns the request target.
func (e *Error) RequestURL() string { return e.url }

// ErrorCode returns the transport error code, empty for HTTP error statuses.
func (e *Error) ErrorCode() string { return e.code }
