package config

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default client settings when no config file exists.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 10
)

// Config holds client settings for talking to the testing backend.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	NoColor        bool   `yaml:"no_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout converts the configured timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the config file, applies environment overrides, and validates.
// A missing file is not an error; defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = parse(data)
		if err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parse decodes a strict single-document YAML config.
func parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config fields from MCQTEST_* environment variables.
func applyEnv(cfg *Config) error {
	if base := strings.TrimSpace(os.Getenv("MCQTEST_BASE_URL")); base != "" {
		cfg.BaseURL = base
	}
	if timeout := strings.TrimSpace(os.Getenv("MCQTEST_TIMEOUT")); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("parse MCQTEST_TIMEOUT %q: %w", timeout, err)
		}
		cfg.TimeoutSeconds = seconds
	}
	if noColor := strings.TrimSpace(os.Getenv("MCQTEST_NO_COLOR")); noColor != "" {
		value, err := strconv.ParseBool(noColor)
		if err != nil {
			return fmt.Errorf("parse MCQTEST_NO_COLOR %q: %w", noColor, err)
		}
		cfg.NoColor = value
	}
	return nil
}

// Validate checks that the configuration is usable.
func Validate(cfg Config) error {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return fmt.Errorf("base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse base_url %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url %q must use http or https", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	return nil
}
