package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// StdinPath names standard input as a document source.
const StdinPath = "-"

// Config holds all application configuration.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// InputConfig names the documents to evaluate. Either RequestPath is used, or
// CartPath and CouponsPath together.
type InputConfig struct {
	RequestPath string
	CartPath    string
	CouponsPath string
}

// OutputConfig holds report rendering configuration.
type OutputConfig struct {
	Format string // "json", "text" or "simple"
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// MetricsConfig holds Prometheus textfile configuration.
type MetricsConfig struct {
	TextfilePath string // empty disables the flush
	Namespace    string
}

// Environment keys. Flags are stored under the same keys so they override env.
const (
	keyRequestFile      = "REQUEST_FILE"
	keyCartFile         = "CART_FILE"
	keyCouponsFile      = "COUPONS_FILE"
	keyOutputFormat     = "OUTPUT_FORMAT"
	keyLogLevel         = "LOG_LEVEL"
	keyLogFormat        = "LOG_FORMAT"
	keyMetricsTextfile  = "METRICS_TEXTFILE"
	keyMetricsNamespace = "METRICS_NAMESPACE"
)

var flagKeys = map[string]string{
	"request":          keyRequestFile,
	"cart":             keyCartFile,
	"coupons":          keyCouponsFile,
	"output":           keyOutputFormat,
	"log-level":        keyLogLevel,
	"log-format":       keyLogFormat,
	"metrics-textfile": keyMetricsTextfile,
}

// Load reads configuration from an optional .env file, the environment and
// the given command-line arguments, in increasing order of precedence.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	var setErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := k.Set(flagKeys[f.Name], f.Value.String()); err != nil && setErr == nil {
			setErr = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}

	cfg := &Config{
		Input: InputConfig{
			RequestPath: strings.TrimSpace(k.String(keyRequestFile)),
			CartPath:    strings.TrimSpace(k.String(keyCartFile)),
			CouponsPath: strings.TrimSpace(k.String(keyCouponsFile)),
		},
		Output: OutputConfig{
			Format: valueOrDefault(k.String(keyOutputFormat), "json"),
		},
		Logger: LoggerConfig{
			Level:  valueOrDefault(k.String(keyLogLevel), "info"),
			Format: valueOrDefault(k.String(keyLogFormat), "json"),
		},
		Metrics: MetricsConfig{
			TextfilePath: strings.TrimSpace(k.String(keyMetricsTextfile)),
			Namespace:    valueOrDefault(k.String(keyMetricsNamespace), "cart_discount"),
		},
	}

	if cfg.Input.RequestPath == "" && cfg.Input.CartPath == "" && cfg.Input.CouponsPath == "" {
		cfg.Input.RequestPath = StdinPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("evaluate", pflag.ContinueOnError)
	fs.String("request", "", "combined cart+coupons JSON document (.gz allowed, - for stdin)")
	fs.String("cart", "", "cart JSON document (requires --coupons)")
	fs.String("coupons", "", "coupons JSON document (requires --cart)")
	fs.String("output", "", "report format: json, text or simple")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: json or console")
	fs.String("metrics-textfile", "", "write Prometheus metrics to this file after evaluating")
	return fs
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.RequestPath != "" && (c.Input.CartPath != "" || c.Input.CouponsPath != "") {
		return errors.New("request file cannot be combined with cart or coupons files")
	}

	if c.Input.RequestPath == "" {
		if c.Input.CartPath == "" {
			return errors.New("cart file is required when coupons file is set")
		}
		if c.Input.CouponsPath == "" {
			return errors.New("coupons file is required when cart file is set")
		}
		if c.Input.CartPath == StdinPath && c.Input.CouponsPath == StdinPath {
			return errors.New("cart and coupons cannot both be read from stdin")
		}
	}

	validOutputFormats := map[string]bool{
		"json":   true,
		"text":   true,
		"simple": true,
	}

	if !validOutputFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be json, text or simple)", c.Output.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Metrics.TextfilePath != "" && c.Metrics.Namespace == "" {
		return errors.New("metrics namespace is required when the metrics textfile is set")
	}

	return nil
}

// UsesRequestFile reports whether input comes from a single combined document.
func (c *InputConfig) UsesRequestFile() bool {
	return c.RequestPath != ""
}

func valueOrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
