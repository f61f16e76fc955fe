package nhtsa

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the vPIC decodevin endpoint the VIN is appended to.
const DefaultBaseURL = "https://vpic.nhtsa.dot.gov/api/vehicles/decodevin"

const (
	tracerName = "github.com/five82/vinquery/internal/nhtsa"

	msgNotJSON     = "Response is not valid JSON"
	msgNoResults   = "Response contains no results"
	msgNoErrorCode = "Response has no error code"
)

// Validity is the outcome of the most recent Get.
type Validity int

const (
	ValidityUnknown Validity = iota // Get has not been called
	ValidityValid
	ValidityInvalid
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ErrorKind classifies why a Get produced no vehicle.
type ErrorKind int

const (
	KindNone       ErrorKind = iota // not called yet, or success
	KindTransport                   // network fault or timeout during fetch
	KindHTTPStatus                  // 4xx/5xx answer
	KindMalformed                   // body is not JSON
	KindNoResults                   // JSON without any result record
	KindAPI                         // the API reported an error code
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	case KindNoResults:
		return "no_results"
	case KindAPI:
		return "api"
	default:
		return "none"
	}
}

// Option customizes a Query.
type Option func(*Query)

// WithBaseURL replaces DefaultBaseURL. A trailing slash is ignored.
func WithBaseURL(base string) Option {
	return func(q *Query) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			q.baseURL = trimmed
		}
	}
}

// WithLogger sets the logger that receives one debug record per Get.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Query) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithTracerProvider sets the provider for the nhtsa.decodevin span. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(q *Query) {
		if tp != nil {
			q.tracer = tp.Tracer(tracerName)
		}
	}
}

// Query decodes a single VIN. The diagnostic accessors describe the most
// recent Get and are overwritten by each call. A Query must not be shared
// between goroutines without external locking.
type Query struct {
	vin     string
	baseURL string
	url     string
	fetcher Fetcher
	logger  *slog.Logger
	tracer  trace.Tracer

	rawResponse     string
	response        *Envelope
	validity        Validity
	errMsg          string
	errCode         int
	kind            ErrorKind
	upstreamTimeout bool
}

// NewQuery captures vin and builds the request URL. The VIN is inserted
// verbatim. No request is made until Get.
func NewQuery(vin string, fetcher Fetcher, opts ...Option) *Query {
	q := &Query{
		vin:     vin,
		baseURL: DefaultBaseURL,
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.url = q.baseURL + "/" + vin + "?format=json"
	return q
}

// VIN returns the VIN captured at construction.
func (q *Query) VIN() string { return q.vin }

// URL returns the request URL.
func (q *Query) URL() string { return q.url }

// RawResponse returns the text of the last fetch, possibly partial.
func (q *Query) RawResponse() string { return q.rawResponse }

// Response returns the parsed envelope of the last fetch, or nil.
func (q *Query) Response() *Envelope { return q.response }

// Validity returns the tri-state outcome of the last Get.
func (q *Query) Validity() Validity { return q.validity }

// Valid reports whether the last Get produced a vehicle.
func (q *Query) Valid() bool { return q.validity == ValidityValid }

// Error returns the last error message, or "" when there is none.
func (q *Query) Error() string { return q.errMsg }

// ErrorCode returns the API error code of the last Get; 0 means none.
func (q *Query) ErrorCode() int { return q.errCode }

// Kind returns the failure class of the last Get.
func (q *Query) Kind() ErrorKind { return q.kind }

// UpstreamTimeout reports whether the API answered with its own
// "Connection Timeout Expired" error inside a successful HTTP response.
func (q *Query) UpstreamTimeout() bool { return q.upstreamTimeout }

// Get fetches and decodes the VIN. It returns the vehicle and true on
// success. Every failure is recorded in the diagnostic accessors and reported
// as false; Get never returns an error.
func (q *Query) Get(ctx context.Context) (VehicleInfo, bool) {
	ctx, span := q.tracer.Start(ctx, "nhtsa.decodevin")
	defer span.End()

	q.reset()
	info, ok := q.get(ctx)

	span.SetAttributes(
		attribute.String("vin", q.vin),
		attribute.String("nhtsa.validity", q.validity.String()),
		attribute.String("nhtsa.error_kind", q.kind.String()),
		attribute.Int("nhtsa.error_code", q.errCode),
	)
	if !ok {
		span.SetStatus(codes.Error, q.errMsg)
	}
	q.logger.LogAttrs(ctx, slog.LevelDebug, "vin decoded",
		slog.String("vin", q.vin),
		slog.String("validity", q.validity.String()),
		slog.String("kind", q.kind.String()),
		slog.Int("error_code", q.errCode),
		slog.String("error", q.errMsg),
	)
	return info, ok
}

func (q *Query) get(ctx context.Context) (VehicleInfo, bool) {
	if q.fetcher == nil {
		return q.fail(KindTransport, 0, ErrNoFetcher.Error())
	}

	body, err := q.fetcher.Fetch(ctx, q.url)
	q.rawResponse = body
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			msg := statusErr.Message
			if msg == "" {
				msg = statusErr.Error()
			}
			return q.fail(KindHTTPStatus, 0, msg)
		}
		var timeoutErr *TimeoutError
		if errors.As(err, &timeoutErr) {
			q.logger.LogAttrs(ctx, slog.LevelDebug, "fetch timed out",
				slog.String("url", q.url),
				slog.String("op", timeoutErr.Op),
				slog.Any("cause", timeoutErr.Cause),
			)
		}
		return q.fail(KindTransport, 0, err.Error())
	}

	var env Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return q.fail(KindMalformed, 0, msgNotJSON)
	}
	q.response = &env

	if len(env.Results) == 0 {
		return q.fail(KindNoResults, 0, firstNonEmpty(env.Message, msgNoResults))
	}
	record := env.Results[0]

	code, text, err := ParseErrorCode(record.ErrorCode)
	if err != nil {
		msg := firstNonEmpty(record.ErrorText, record.Message, env.Message, msgNoErrorCode)
		q.upstreamTimeout = isUpstreamTimeout(msg, record.Message)
		return q.fail(KindAPI, 0, msg)
	}
	if code != 0 {
		msg := strings.TrimSpace(record.ErrorCode)
		if !hasDescription(text) {
			msg = firstNonEmpty(record.ErrorText, msg)
		}
		q.upstreamTimeout = isUpstreamTimeout(msg, record.ErrorText, record.Message)
		return q.fail(KindAPI, code, msg)
	}

	q.validity = ValidityValid
	return record.vehicleInfo(), true
}

func (q *Query) fail(kind ErrorKind, code int, msg string) (VehicleInfo, bool) {
	q.validity = ValidityInvalid
	q.kind = kind
	q.errCode = code
	q.errMsg = msg
	return VehicleInfo{}, false
}

func (q *Query) reset() {
	q.rawResponse = ""
	q.response = nil
	q.validity = ValidityUnknown
	q.errMsg = ""
	q.errCode = 0
	q.kind = KindNone
	q.upstreamTimeout = false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
