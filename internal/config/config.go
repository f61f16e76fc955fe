package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings vinquery needs to reach the vPIC API.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	LogLevel  string
	LogFormat string
}

const (
	defaultConfigPath = "~/.config/vinquery/config.toml"
	defaultBaseURL    = "https://vpic.nhtsa.dot.gov/api/vehicles/decodevin"
	defaultTimeout    = 10 * time.Second
	defaultUserAgent  = "vinquery/0.1"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL   string `toml:"base_url"`
		Timeout   string `toml:"timeout"`
		UserAgent string `toml:"user_agent"`
		LogLevel  string `toml:"log_level"`
		LogFormat string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/"); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", v, err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		cfg.Timeout = timeout
	}
	if v := strings.TrimSpace(raw.UserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		cfg.LogFormat = v
	}

	return cfg, nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
