// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

const (
	// PrecedenceLesson prefers lesson.json when both data files exist.
	PrecedenceLesson Precedence = "lesson"
	// PrecedenceTraining prefers training.json when both data files exist.
	PrecedenceTraining Precedence = "training"

	// LogLevelDebug logs every lesson as it is parsed.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs one summary event per operation.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs skipped lessons.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultWatchDebounce is the quiet period before a watch run.
	DefaultWatchDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidPrecedence is returned when a Precedence value is not recognized.
	ErrInvalidPrecedence = errors.New("invalid precedence")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDebounce is returned when watch.debounce is negative.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Precedence names the data file kind that wins when both exist.
	Precedence string

	// InvalidPrecedenceError is returned when a Precedence value is not recognized.
	// It wraps ErrInvalidPrecedence for errors.Is() compatibility.
	InvalidPrecedenceError struct {
		Value Precedence
	}

	// LogLevel is the minimum level for diagnostic log output.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// the field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ContentRoot is the lesson content directory. When set it is the
		// only location considered.
		ContentRoot types.FilesystemPath `json:"content_root" mapstructure:"content_root" toml:"content_root"`
		// RootCandidates are probed, relative to the working directory, when
		// ContentRoot is empty.
		RootCandidates []string `json:"root_candidates" mapstructure:"root_candidates" toml:"root_candidates"`
		// Precedence decides between lesson.json and training.json.
		Precedence Precedence `json:"precedence" mapstructure:"precedence" toml:"precedence"`
		// LogLevel sets the minimum log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" toml:"log_level"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Watch configures --watch mode
		Watch WatchConfig `json:"watch" mapstructure:"watch" toml:"watch"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// WatchConfig configures content watching.
	WatchConfig struct {
		// Debounce is the quiet period after the last change before re-running.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce" toml:"debounce"`
	}
)

// Validate returns an error if the precedence is not "lesson" or "training".
func (p Precedence) Validate() error {
	switch p {
	case PrecedenceLesson, PrecedenceTraining:
		return nil
	default:
		return &InvalidPrecedenceError{Value: p}
	}
}

// Kind maps the precedence to the preferred data file kind.
// Unknown values fall back to lesson.json.
func (p Precedence) Kind() lesson.Kind {
	k, err := lesson.ParseKind(string(p))
	if err != nil {
		return lesson.KindLesson
	}
	return k
}

// Error implements the error interface.
func (e *InvalidPrecedenceError) Error() string {
	return fmt.Sprintf("invalid precedence %q (expected \"lesson\" or \"training\")", e.Value)
}

// Unwrap returns ErrInvalidPrecedence for errors.Is() compatibility.
func (e *InvalidPrecedenceError) Unwrap() error { return ErrInvalidPrecedence }

// Validate returns an error if the level is not a known log level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (expected debug, info, warn or error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns an error if the color scheme is not recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks every field and collects all failures.
func (c *Config) Validate() error {
	var errs []error
	if c.ContentRoot != "" {
		if err := c.ContentRoot.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Precedence.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ContentRoot:    "",
		RootCandidates: []string{},
		Precedence:     PrecedenceLesson,
		LogLevel:       LogLevelWarn,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
	}
}
