package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat    = FormatSummary
	DefaultNamespace = "schedule_health"
	DefaultDebounce  = 250 * time.Millisecond
	DefaultLogLevel  = "info"
)

// Output formats understood by the renderers.
const (
	FormatSummary = "summary"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMetrics = "metrics"
)

// Config is the top-level schedhealth configuration.
type Config struct {
	// Input is the path of the project file (YAML or JSON) to analyse.
	Input string `yaml:"input"`

	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

// OutputConfig selects how and where the report is written.
type OutputConfig struct {
	// Format is one of: summary | json | yaml | metrics.
	Format string `yaml:"format"`

	// Path is the file the report is written to. Empty means stdout.
	Path string `yaml:"path"`

	// Dir, when set and Path is empty, writes the report to
	// <dir>/schedule-report-<project-slug>.<ext>.
	Dir string `yaml:"dir"`
}

// MetricsConfig controls the Prometheus exposition of the report.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`

	// Textfile, when set, receives the metrics exposition on every report
	// in addition to the selected output, for node_exporter's textfile
	// collector.
	Textfile string `yaml:"textfile"`
}

// AlertsConfig holds the threshold rules evaluated against every report.
type AlertsConfig struct {
	Rules []AlertRule `yaml:"rules"`
}

// AlertRule defines a threshold-based alert condition.
type AlertRule struct {
	// Name is the human-readable alert identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "percent_at_risk > 30" or
	// "weighted_mean_spi < 0.9".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	// Debounce collapses bursts of file events (editors often write twice)
	// into a single reload.
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// SlogLevel returns the slog level for l.Level. Unknown values map to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns Default() when path does not
// exist, so the CLI runs without a config file.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Format: DefaultFormat},
		Metrics: MetricsConfig{Namespace: DefaultNamespace},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Validate checks enums and structural constraints. It is exported so the
// CLI can re-check a config after applying flag overrides.
func (cfg *Config) Validate() error {
	switch cfg.Output.Format {
	case FormatSummary, FormatJSON, FormatYAML, FormatMetrics:
	default:
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	if cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required")
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	seen := make(map[string]int, len(cfg.Alerts.Rules))
	for i, r := range cfg.Alerts.Rules {
		if r.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if j, dup := seen[r.Name]; dup {
			return fmt.Errorf("alerts.rules[%d] %q: name already used by alerts.rules[%d]", i, r.Name, j)
		}
		seen[r.Name] = i
		if len(strings.Fields(r.Condition)) != 3 {
			return fmt.Errorf("alerts.rules[%d] %q: condition must be \"field op value\", got %q", i, r.Name, r.Condition)
		}
		switch r.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("alerts.rules[%d] %q: unknown severity %q", i, r.Name, r.Severity)
		}
	}
	return nil
}
