package apicall

import (
	"fmt"
	"net/http"

	"github.com/narender/anime-explorer/common/apierrors"
)

const (
	// MessageConnectionError is used when a request was sent but no response arrived.
	MessageConnectionError = "Connection error"
	// MessageRequestConfigError is used when the request could not be built.
	MessageRequestConfigError = "Request configuration error"
	// MessageMalformedResponse is used when a response arrived but its body
	// could not be decoded.
	MessageMalformedResponse = "Malformed response from server"
	// MessageUnexpectedError is used for failures that are not API-shaped.
	MessageUnexpectedError = "Unexpected error"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not found",
	http.StatusConflict:            "Conflict",
	http.StatusUnprocessableEntity: "Validation error",
	http.StatusTooManyRequests:     "Rate limited, retry later",
	http.StatusInternalServerError: "Internal server error",
	http.StatusBadGateway:          "Gateway error",
	http.StatusServiceUnavailable:  "Service unavailable",
}

// StatusMessage returns the human message for an HTTP status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Server error: %d", status)
}

// errorMessage picks the message for a failed exchange. status is the
// failure's status after defaulting.
func errorMessage(reqErr RequestError, status int) string {
	switch {
	case reqErr.APIResponse() != nil:
		return StatusMessage(status)
	case reqErr.ErrorCode() == apierrors.ErrCodeMalformedData:
		return MessageMalformedResponse
	case reqErr.RequestSent():
		return MessageConnectionError
	default:
		return MessageRequestConfigError
	}
}
