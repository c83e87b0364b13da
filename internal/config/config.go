// Package config loads the journal tool's settings from JOURNAL_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Version is the release of the journal tool.
const Version = "0.4.0"

// Config holds all journal tool configuration.
type Config struct {
	Mode            string        `env:"JOURNAL_MODE" envDefault:"query"` // "query" or "stream"
	LogLevel        string        `env:"JOURNAL_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"JOURNAL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MetricsAddr     string        `env:"JOURNAL_METRICS_ADDR"` // empty disables the /metrics listener
	ShowVersion     bool          // set by the -version flag

	Connector ConnectorConfig
	Engine    EngineConfig
	Pipeline  PipelineConfig
	Output    OutputConfig
}

// ConnectorConfig holds connector-specific settings.
type ConnectorConfig struct {
	Provider     string        `env:"JOURNAL_CONNECTOR" envDefault:"file"`
	Endpoint     string        `env:"JOURNAL_ENDPOINT"` // journal directory, file or URL
	APIKey       string        `env:"JOURNAL_API_KEY"`
	Source       string        `env:"JOURNAL_SOURCE"`
	PollInterval time.Duration `env:"JOURNAL_POLL_INTERVAL" envDefault:"1s"`
	Limit        int           `env:"JOURNAL_LIMIT"`
}

// Extra returns the provider-specific settings in connector form.
func (c ConnectorConfig) Extra() map[string]string {
	m := map[string]string{"poll_interval": c.PollInterval.String()}
	if c.Source != "" {
		m["source"] = c.Source
	}
	return m
}

// EngineConfig holds decoding engine settings.
type EngineConfig struct {
	Workers int      `env:"JOURNAL_WORKERS"` // 0 = GOMAXPROCS
	Schemas []string `env:"JOURNAL_SCHEMAS" envSeparator:","`
}

// PipelineConfig holds the scan policy.
type PipelineConfig struct {
	Include      []string      `env:"JOURNAL_INCLUDE" envSeparator:","`
	Exclude      []string      `env:"JOURNAL_EXCLUDE" envSeparator:","`
	MaxErrors    int           `env:"JOURNAL_MAX_ERRORS"`
	SkipErrors   bool          `env:"JOURNAL_SKIP_ERRORS"`
	BatchWindow  time.Duration `env:"JOURNAL_BATCH_WINDOW"`
	MaxBatchSize int           `env:"JOURNAL_MAX_BATCH_SIZE" envDefault:"1000"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format         string            `env:"JOURNAL_OUTPUT_FORMAT" envDefault:"json"` // json, yaml or debug
	Verbosity      string            `env:"JOURNAL_VERBOSITY" envDefault:"standard"`
	Pretty         bool              `env:"JOURNAL_OUTPUT_PRETTY"`
	FilePath       string            `env:"JOURNAL_OUTPUT_FILE"`
	FileMaxSize    int64             `env:"JOURNAL_OUTPUT_FILE_MAX_SIZE"`
	FileMaxBackups int               `env:"JOURNAL_OUTPUT_FILE_MAX_BACKUPS" envDefault:"9"`
	WebhookURL     string            `env:"JOURNAL_WEBHOOK_URL"`
	WebhookHeaders map[string]string `env:"JOURNAL_WEBHOOK_HEADERS" envSeparator:"," envKeyValSeparator:"="`
	SQLitePath     string            `env:"JOURNAL_OUTPUT_SQLITE"`
	BufferSize     int               `env:"JOURNAL_OUTPUT_BUFFER" envDefault:"1024"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	return load(nil)
}

// load parses environ, or the process environment when environ is nil.
func load(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

var (
	modes      = []string{"query", "stream"}
	formats    = []string{"json", "yaml", "debug"}
	verbosity  = []string{"minimal", "standard", "full"}
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	providers  = []string{"file", "http"}
	urlSchemes = []string{"http", "https"}
)

// Validate checks that the configuration can start a scan. All problems are
// reported together.
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(modes, c.Mode) {
		errs = append(errs, fmt.Errorf("mode %q must be one of %v", c.Mode, modes))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log level %q must be one of %v", c.LogLevel, logLevels))
	}
	if c.MetricsAddr != "" && !strings.Contains(c.MetricsAddr, ":") {
		errs = append(errs, fmt.Errorf("JOURNAL_METRICS_ADDR %q must be host:port", c.MetricsAddr))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must not be negative, got %v", c.ShutdownTimeout))
	}

	switch c.Connector.Provider {
	case "file":
		if c.Connector.Endpoint == "" {
			errs = append(errs, errors.New("JOURNAL_ENDPOINT must name a journal directory or file"))
		}
	case "http":
		if !validURL(c.Connector.Endpoint) {
			errs = append(errs, fmt.Errorf("JOURNAL_ENDPOINT %q must be an http(s) URL", c.Connector.Endpoint))
		}
	default:
		errs = append(errs, fmt.Errorf("connector %q must be one of %v", c.Connector.Provider, providers))
	}
	if c.Connector.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %v", c.Connector.PollInterval))
	}
	if c.Connector.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative, got %d", c.Connector.Limit))
	}

	if c.Engine.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Engine.Workers))
	}

	if c.Pipeline.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("max errors must not be negative, got %d", c.Pipeline.MaxErrors))
	}
	if c.Pipeline.BatchWindow < 0 {
		errs = append(errs, fmt.Errorf("batch window must not be negative, got %v", c.Pipeline.BatchWindow))
	}
	if c.Pipeline.MaxBatchSize < 0 {
		errs = append(errs, fmt.Errorf("max batch size must not be negative, got %d", c.Pipeline.MaxBatchSize))
	}

	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output format %q must be one of %v", c.Output.Format, formats))
	}
	if !slices.Contains(verbosity, c.Output.Verbosity) {
		errs = append(errs, fmt.Errorf("verbosity %q must be one of %v", c.Output.Verbosity, verbosity))
	}
	if c.Output.FileMaxSize < 0 {
		errs = append(errs, fmt.Errorf("output file max size must not be negative, got %d", c.Output.FileMaxSize))
	}
	if c.Output.WebhookURL != "" && !validURL(c.Output.WebhookURL) {
		errs = append(errs, fmt.Errorf("JOURNAL_WEBHOOK_URL %q must be an http(s) URL", c.Output.WebhookURL))
	}
	if c.Output.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("output buffer must not be negative, got %d", c.Output.BufferSize))
	}

	return errors.Join(errs...)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host != "" && slices.Contains(urlSchemes, u.Scheme)
}
