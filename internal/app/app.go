package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/five82/vinquery/internal/config"
	"github.com/five82/vinquery/internal/logging"
	"github.com/five82/vinquery/internal/nhtsa"
	"github.com/five82/vinquery/internal/prefs"
	"github.com/five82/vinquery/internal/ui"
	"github.com/five82/vinquery/internal/vin"
)

// ErrDecodeFailed is returned by Run when a one-shot decode yields no vehicle.
var ErrDecodeFailed = errors.New("decode failed")

// Options configure a vinquery run. Zero values fall back to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vinquery/prefs.toml

	VIN  string // non-empty decodes once and exits; empty starts the TUI
	JSON bool   // one-shot output as JSON instead of the styled report

	Timeout  time.Duration
	BaseURL  string
	LogLevel string
	LogFile  string
	Trace    bool // export decode and HTTP spans to the log destination

	Stdout io.Writer // nil uses os.Stdout
	Stderr io.Writer // nil uses os.Stderr
}

// Run decodes opts.VIN once, or starts the TUI when no VIN is given.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	oneShot := strings.TrimSpace(opts.VIN) != ""
	logger, logOut, closeLog, err := newLogger(cfg, opts, oneShot)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	tp, err := newTracerProvider(opts.Trace, logOut)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("flush traces failed", "err", err)
		}
	}()

	fetcher := nhtsa.NewHTTPFetcher(nhtsa.HTTPOptions{
		Timeout:        cfg.Timeout,
		UserAgent:      cfg.UserAgent,
		TracerProvider: tp,
	})
	newQuery := func(v string) *nhtsa.Query {
		return nhtsa.NewQuery(v, fetcher,
			nhtsa.WithBaseURL(cfg.BaseURL),
			nhtsa.WithLogger(logger),
			nhtsa.WithTracerProvider(tp),
		)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	if oneShot {
		return decodeOnce(ctx, newQuery, opts, userPrefs.Theme, logger)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger.Info("starting lookup ui", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	return ui.Run(ui.Options{
		Context:   ctx,
		NewQuery:  newQuery,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		VIN:       userPrefs.LastVIN,
	})
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if v := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// newLogger writes to LogFile when set. Otherwise one-shot runs log to stderr
// and the TUI logs nowhere, since Bubble Tea owns the terminal. The returned
// writer is the chosen destination.
func newLogger(cfg config.Config, opts Options, oneShot bool) (*slog.Logger, io.Writer, func(), error) {
	noop := func() {}
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		resolved, err := config.ExpandPath(path)
		if err != nil {
			return nil, nil, noop, err
		}
		file, err := os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("open log file: %w", err)
		}
		logger, err := logging.New(file, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			_ = file.Close()
			return nil, nil, noop, err
		}
		return logger, file, func() { _ = file.Close() }, nil
	}
	if !oneShot {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			return nil, nil, noop, err
		}
		return logging.Discard(), io.Discard, noop, nil
	}
	w := stderr(opts)
	logger, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, noop, err
	}
	return logger, w, noop, nil
}

// newTracerProvider exports spans synchronously to w when enabled and samples
// nothing otherwise.
func newTracerProvider(enabled bool, w io.Writer) (*sdktrace.TracerProvider, error) {
	if !enabled {
		return sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.NeverSample())), nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)), nil
}

func decodeOnce(ctx context.Context, newQuery ui.QueryFactory, opts Options, theme string, logger *slog.Logger) error {
	raw := strings.TrimSpace(opts.VIN)
	if err := vin.Validate(vin.Normalize(raw)); err != nil {
		logger.Warn("vin failed local validation, querying anyway", "vin", raw, "err", err)
	}

	q := newQuery(raw)
	info, ok := q.Get(ctx)
	if !ok {
		logger.Info("decode failed",
			"vin", raw,
			"kind", q.Kind().String(),
			"error_code", q.ErrorCode(),
			"upstream_timeout", q.UpstreamTimeout(),
		)
	}

	out := stdout(opts)
	if opts.JSON {
		if err := writeJSON(out, q, info, ok); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	} else {
		fmt.Fprintln(out, ui.RenderReport(ui.GetTheme(theme).Styles(), q, info, ok))
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrDecodeFailed, q.Error())
	}
	return nil
}

// outcome is the -json document for a single decode.
type outcome struct {
	VIN             string             `json:"vin"`
	URL             string             `json:"url"`
	Valid           bool               `json:"valid"`
	Validity        string             `json:"validity"`
	Kind            string             `json:"kind"`
	Error           string             `json:"error,omitempty"`
	ErrorCode       int                `json:"error_code,omitempty"`
	UpstreamTimeout bool               `json:"upstream_timeout,omitempty"`
	Vehicle         *nhtsa.VehicleInfo `json:"vehicle,omitempty"`
}

func writeJSON(w io.Writer, q *nhtsa.Query, info nhtsa.VehicleInfo, ok bool) error {
	doc := outcome{
		VIN:             q.VIN(),
		URL:             q.URL(),
		Valid:           q.Valid(),
		Validity:        q.Validity().String(),
		Kind:            q.Kind().String(),
		Error:           q.Error(),
		ErrorCode:       q.ErrorCode(),
		UpstreamTimeout: q.UpstreamTimeout(),
	}
	if ok {
		doc.Vehicle = &info
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func stdout(opts Options) io.Writer {
	if opts.Stdout != nil {
		return opts.Stdout
	}
	return os.Stdout
}

func stderr(opts Options) io.Writer {
	if opts.Stderr != nil {
		return opts.Stderr
	}
	return os.Stderr
}
