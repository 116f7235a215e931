package apiresponses

import "time"

// Standard Success Response Envelope
type SuccessResponse struct {
	Status    string `json:"status"` // Always "success"
	Data      any    `json:"data"`
	RequestID string `json:"requestId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Standard Error Response Envelope (used by middleware)
type ErrorResponse struct {
	Status string      `json:"status"` // Always "error"
	Error  ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string         `json:"code"`
	Reason    string         `json:"reason,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewSuccessResponse wraps data in the success envelope.
func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Status:    "success",
		Data:      data,
		Timestamp: now(),
	}
}

// NewErrorResponse builds the error envelope.
func NewErrorResponse(code, reason, message string, details map[string]any) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Error: ErrorDetail{
			Code:      code,
			Reason:    reason,
			Message:   message,
			Details:   details,
			Timestamp: now(),
		},
	}
}

// WithRequestID adds a request ID to the success response
func (r SuccessResponse) WithRequestID(requestID string) SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithRequestID adds a request ID to the error response
func (r ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	r.Error.RequestID = requestID
	return r
}

type ActionConfirmation struct {
	Message string `json:"message"`
}
