// Package config loads vinquery's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vinquery/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	base_url = "https://vpic.nhtsa.dot.gov/api/vehicles/decodevin"
//	timeout = "10s"
//	user_agent = "vinquery/0.1"
//	log_level = "info"   # debug, info, warn, error
//	log_format = "text"  # text or json
//
// Every field is optional. timeout accepts any time.ParseDuration value and
// must be positive; it bounds each request to the API.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and invalid timeouts. A missing file is
// not an error.
package config
