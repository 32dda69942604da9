package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
)

const userAgent = "rollcall/1.0"

var ErrHTTPStatus = errors.New("unexpected http status")

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a single call to the HR backend
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// Cacheable marks idempotent reads. The backend serves some reads as POST.
	Cacheable bool
}

func (r Request) Key() cache.Key {
	return cache.NewKey(r.Method, r.URL, r.Header, r.Body)
}

func newJSONRequest(method, url string, body any) (Request, error) {
	header := http.Header{}
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return Request{}, fmt.Errorf("%w: failed to encode request body: %w", domain.ErrInvalidInput, err)
		}
		header.Set("Content-Type", "application/json")
	}

	return Request{
		Method: method,
		URL:    url,
		Header: header,
		Body:   encoded,
	}, nil
}

type Response struct {
	StatusCode int
	ETag       string
	Body       []byte
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// StatusCode returns the HTTP status carried by err, if any
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

type Client interface {
	Do(ctx context.Context, request Request) (Response, error)
}

type client struct {
	httpClient HttpClient
	limiter    *rate.Limiter
}

func (c client) Do(ctx context.Context, request Request) (Response, error) {
	logger := logging.FromContext(ctx).With("method", request.Method, "url", request.URL)

	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("%w: rate limiter: %w", domain.ErrTransport, err)
	}

	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, request.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to create request: %w", domain.ErrTransport, err)
	}
	for name, values := range request.Header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send request", "error", err)
		return Response{}, fmt.Errorf("%w: failed to send request: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read response body", "error", err)
		return Response{}, fmt.Errorf("%w: failed to read response body: %w", domain.ErrTransport, err)
	}

	logger.InfoContext(ctx, "hr api request completed", "status", resp.StatusCode, "duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("%w: %w", domain.ErrTransport, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    envelopeMessage(data),
		})
	}

	return Response{
		StatusCode: resp.StatusCode,
		ETag:       resp.Header.Get("ETag"),
		Body:       data,
	}, nil
}

func NewClient(httpClient HttpClient, limiter *rate.Limiter) Client {
	return client{
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// NewHTTPClient returns an instrumented http client with the given timeout
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewLimiter paces outbound requests to requestsPerSecond
func NewLimiter(requestsPerSecond float64) *rate.Limiter {
	burst := max(int(requestsPerSecond), 1)
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
