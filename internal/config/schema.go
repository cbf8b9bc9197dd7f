package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds deck configuration.
// Stored at: {project_root}/deck.yaml
type Config struct {
	Paths      PathsCfg      `mapstructure:"paths" json:"paths" yaml:"paths"`
	Log        LogCfg        `mapstructure:"log" json:"log" yaml:"log"`
	Validation ValidationCfg `mapstructure:"validation" json:"validation" yaml:"validation"`
	Watch      WatchCfg      `mapstructure:"watch" json:"watch" yaml:"watch"`
}

// PathsCfg locates the pipeline documents. Relative paths are resolved
// against the project root; ${ENV_VAR} references are expanded.
type PathsCfg struct {
	Content  string `mapstructure:"content" json:"content" yaml:"content"`       // Slide content document
	Style    string `mapstructure:"style" json:"style" yaml:"style"`             // Style theme document
	PDFStyle string `mapstructure:"pdf_style" json:"pdf_style" yaml:"pdf_style"` // PDF style analysis document
	Output   string `mapstructure:"output" json:"output" yaml:"output"`          // Integrated presentation
}

// LogCfg configures the progress log.
type LogCfg struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`    // debug, info, warn, error
	Format string `mapstructure:"format" json:"format" yaml:"format"` // text or json
}

// ValidationCfg toggles input checks.
type ValidationCfg struct {
	// InputSchemas validates every input document against its JSON Schema.
	InputSchemas bool `mapstructure:"input_schemas" json:"input_schemas" yaml:"input_schemas"`
	// UniqueSlideIDs rejects content documents with repeated slide ids.
	UniqueSlideIDs bool `mapstructure:"unique_slide_ids" json:"unique_slide_ids" yaml:"unique_slide_ids"`
}

// WatchCfg configures `deck watch`.
type WatchCfg struct {
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsCfg{
			Content:  "analysis/presentation-pipeline/01_contents_slides.json",
			Style:    "analysis/presentation-pipeline/02_style_theme.json",
			PDFStyle: "analysis/pdf-analysis/bluehive_style_analysis.json",
			Output:   "analysis/presentation-pipeline/03_integrate_presentation.json",
		},
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
		Validation: ValidationCfg{
			InputSchemas:   true,
			UniqueSlideIDs: true,
		},
		Watch: WatchCfg{
			DebounceMS: 250,
		},
	}
}

// ResolvedPaths returns the document paths with ${ENV_VAR} references
// expanded.
func (c *Config) ResolvedPaths() PathsCfg {
	return PathsCfg{
		Content:  ResolveEnvVars(c.Paths.Content),
		Style:    ResolveEnvVars(c.Paths.Style),
		PDFStyle: ResolveEnvVars(c.Paths.PDFStyle),
		Output:   ResolveEnvVars(c.Paths.Output),
	}
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return 0
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// SlogLevel parses the configured log level.
func (l LogCfg) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// JSON reports whether logs should be emitted as JSON.
func (l LogCfg) JSON() bool {
	return strings.EqualFold(l.Format, "json")
}
