package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/vinquery/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	vin := flag.String("vin", "", "decode this VIN and exit; omit to start the interactive UI")
	asJSON := flag.Bool("json", false, "print the decode outcome as JSON (with -vin)")
	timeout := flag.Duration("timeout", 0, "request timeout (optional, defaults to 10s)")
	baseURL := flag.String("base-url", "", "override the vPIC decodevin base URL")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "append logs to this file")
	traceSpans := flag.Bool("trace", false, "write OpenTelemetry spans to the log destination")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		VIN:        *vin,
		JSON:       *asJSON,
		Timeout:    *timeout,
		BaseURL:    *baseURL,
		LogLevel:   *logLevel,
		LogFile:    *logFile,
		Trace:      *traceSpans,
	}

	if err := app.Run(ctx, opts); err != nil {
		// The outcome of a failed decode is already on stdout.
		if !errors.Is(err, app.ErrDecodeFailed) {
			fmt.Fprintf(os.Stderr, "vinquery: %v\n", err)
		}
		return 1
	}
	return 0
}
