package apicall

import (
	"context"
	"log/slog"
	"sync"
)

type fakeRequestError struct {
	msg  string
	resp *ErrorResponse
	sent bool
	url  string
	code string
}

func (e *fakeRequestError) Error() string                { return e.msg }
func (e *fakeRequestError) APIResponse() *ErrorResponse { return e.resp }
func (e *fakeRequestError) RequestSent() bool            { return e.sent }
func (e *fakeRequestError) RequestURL() string           { return e.url }
func (e *fakeRequestError) ErrorCode() string            { return e.code }

func apiError(status int, body *ErrorBody) *fakeRequestError {
	return &fakeRequestError{
		msg:  "request failed",
		resp: &ErrorResponse{Data: body, Status: status},
		sent: true,
		url:  "/anime",
	}
}

type logCall struct {
	kind   string
	status int
	url    string
	msg    string
	err    error
	attrs  []slog.Attr
}

type recordingLogger struct {
	mu    sync.Mutex
	calls []logCall
}

func (l *recordingLogger) APIError(_ context.Context, status int, url string, err error, _ ...slog.Attr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, logCall{kind: "api", status: status, url: url, err: err})
}

func (l *recordingLogger) Error(_ context.Context, msg string, err error, attrs ...slog.Attr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, logCall{kind: "error", msg: msg, err: err, attrs: attrs})
}

type panickingLogger struct{}

func (panickingLogger) APIError(context.Context, int, string, error, ...slog.Attr) {
	panic("logger down")
}

func (panickingLogger) Error(context.Context, string, error, ...slog.Attr) {
	panic("logger down")
}
