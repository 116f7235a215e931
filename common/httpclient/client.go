// Package httpclient is the outbound JSON transport behind apicall.RequestFunc.
// Failures are returned as *Error, which implements apicall.RequestError.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	commonlog "github.com/narender/anime-explorer/common/log"
	"github.com/narender/anime-explorer/common/telemetry/metric"
)

const maxBodyBytes = 4 << 20

// ErrorDecoder turns a failed response body into an ErrorBody.
type ErrorDecoder func(status int, body []byte) *apicall.ErrorBody

// Client sends GET requests to a single base URL and decodes JSON payloads.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	logger      *commonlog.APILogger
	metrics     *metric.APIMetrics
	decodeError ErrorDecoder
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the whole-exchange timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client. Its transport is wrapped
// with otelhttp.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		clone := *hc
		base := clone.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		clone.Transport = otelhttp.NewTransport(base)
		c.httpClient = &clone
	}
}

// WithLogger sets the API logger.
func WithLogger(l *commonlog.APILogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics sets the call metrics recorder.
func WithMetrics(m *metric.APIMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithErrorDecoder replaces DecodeErrorBody for failed responses.
func WithErrorDecoder(d ErrorDecoder) Option {
	return func(c *Client) {
		if d != nil {
			c.decodeError = d
		}
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:      commonlog.NewAPILogger(nil),
		decodeError: DecodeErrorBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CloseIdleConnections closes idle keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Get performs GET path?params and decodes the JSON body into T.
func Get[T any](ctx context.Context, c *Client, path string, params url.Values) (resp *apicall.Response[T], err error) {
	start := time.Now()
	status := 0
	target := c.resolve(path, params)
	defer func() {
		c.metrics.RecordCall(ctx, path, status, err != nil, time.Since(start))
	}()

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if reqErr != nil {
		return nil, &Error{url: target, code: apierrors.ErrCodeRequestSetup, cause: reqErr}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.APIRequest(ctx, http.MethodGet, target)

	httpResp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, &Error{url: target, sent: true, code: transportCode(ctx, doErr), cause: doErr}
	}
	defer httpResp.Body.Close()
	status = httpResp.StatusCode

	body, readErr := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if readErr != nil {
		return nil, &Error{url: target, sent: true, code: transportCode(ctx, readErr), cause: readErr}
	}

	if status >= http.StatusBadRequest {
		return nil, &Error{
			url:  target,
			sent: true,
			response: &apicall.ErrorResponse{
				Data:   c.decodeError(status, body),
				Status: status,
			},
			cause: fmt.Errorf("request failed with status code %d", status),
		}
	}

	c.logger.APIResponse(ctx, status, target, slog.Int("bytes", len(body)))

	var data T
	if len(body) > 0 {
		if jsonErr := json.Unmarshal(body, &data); jsonErr != nil {
			return nil, &Error{url: target, sent: true, code: apierrors.ErrCodeMalformedData, cause: jsonErr}
		}
	}
	return &apicall.Response[T]{Data: data, Status: status}, nil
}

func (c *Client) resolve(path string, params url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func transportCode(ctx context.Context, err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apierrors.ErrCodeRequestTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return apierrors.ErrCodeRequestTimeout
	default:
		return apierrors.ErrCodeNetworkError
	}
}

// DecodeErrorBody reads the error document of a failed response. Bodies that
// are not JSON produce an ErrorBody without a reason.
func DecodeErrorBody(_ int, body []byte) *apicall.ErrorBody {
	var eb apicall.ErrorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return &apicall.ErrorBody{}
	}
	return &eb
}
