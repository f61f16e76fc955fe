package nhtsa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Fetcher performs a single GET and returns the raw response text.
// Implementations return a *StatusError for HTTP error statuses and any other
// error for transport faults. Partial text may accompany an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Ensure HTTPFetcher implements Fetcher at compile time.
var _ Fetcher = (*HTTPFetcher)(nil)

var (
	// ErrTimeout classifies transport faults caused by a deadline or read timeout.
	ErrTimeout = errors.New("read timeout")

	// ErrNoFetcher is reported when a Query has no fetcher to call.
	ErrNoFetcher = errors.New("no fetcher configured")
)

// StatusError is returned when the API answers with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// TimeoutError is returned when a request hits its deadline. Its message is
// always ErrTimeout's; Op and Cause carry the detail for logs.
type TimeoutError struct {
	Op    string
	Cause error
}

func (e *TimeoutError) Error() string { return ErrTimeout.Error() }

// Is matches ErrTimeout.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

func (e *TimeoutError) Unwrap() error { return e.Cause }

const (
	// DefaultUserAgent is sent when HTTPOptions.UserAgent is empty.
	DefaultUserAgent = "vinquery/0.1"
	// DefaultTimeout bounds a whole request when HTTPOptions.Timeout is zero.
	DefaultTimeout = 10 * time.Second
)

// HTTPOptions configure an HTTPFetcher.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper // nil uses http.DefaultTransport

	// TracerProvider receives the client spans; nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// HTTPFetcher is the Fetcher backed by net/http.
type HTTPFetcher struct {
	http      *http.Client
	userAgent string
}

// NewHTTPFetcher builds an HTTPFetcher. The transport is instrumented with
// OpenTelemetry.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var otelOpts []otelhttp.Option
	if opts.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(opts.TracerProvider))
	}
	return &HTTPFetcher{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base, otelOpts...),
		},
		userAgent: userAgent,
	}
}

// Fetch issues a GET for rawURL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f == nil {
		return "", ErrNoFetcher
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", classify("execute request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return string(body), &StatusError{StatusCode: resp.StatusCode, Message: statusMessage(resp)}
	}
	if err != nil {
		return string(body), classify("read response", err)
	}
	return string(body), nil
}

// statusMessage returns the reason phrase of the status line, so
// "503 Service unhappy" yields "Service unhappy".
func statusMessage(resp *http.Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return msg
}

func classify(op string, err error) error {
	if isTimeout(err) {
		return &TimeoutError{Op: op, Cause: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
