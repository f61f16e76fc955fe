// Package app provides the orchestration layer for vinquery.
//
// # Overview
//
// This package wires together configuration, logging, the vPIC fetcher, and
// the UI. It is the composition root where dependencies are initialized and
// connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/vinquery/config.toml
//	       ├─────> applyOverrides()       Command-line flags win
//	       ├─────> newLogger()            stderr, log file, or discard
//	       ├─────> newTracerProvider()    -trace exports spans next to the logs
//	       ├─────> nhtsa.NewHTTPFetcher() One instrumented HTTP client
//	       │
//	       ├─ VIN given ──> decodeOnce()  Query.Get, print report or JSON
//	       └─ no VIN ────> ui.Run()       Interactive lookup (blocks)
//
// # Error Handling
//
// Setup failures (unreadable config, bad log level, unopenable log file) are
// returned wrapped. A one-shot decode never fails with a Go error from the
// query itself; an invalid outcome is printed and then reported as
// ErrDecodeFailed so the command exits non-zero.
//
// A VIN that fails the local check digit test is logged as a warning and still
// sent to the API unchanged; vPIC reports its own error for it.
//
// # Usage Example
//
//	err := app.Run(ctx, app.Options{VIN: "1M8GDM9AXKP042788", JSON: true})
//	if errors.Is(err, app.ErrDecodeFailed) {
//		os.Exit(1)
//	}
package app
