// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"jssh-cli/internal/module"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug enables module resolution tracing.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn reports warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError reports errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidDependencyDir is returned when the dependency directory is not
	// a single path element.
	ErrInvalidDependencyDir = errors.New("invalid dependency directory")
)

type (
	// ColorScheme selects the glamour/lipgloss palette.
	ColorScheme string

	// LogLevel is a charmbracelet/log level name.
	LogLevel string

	// Config is the jssh configuration.
	Config struct {
		Modules ModulesConfig `json:"modules" mapstructure:"modules"`
		Log     LogConfig     `json:"log" mapstructure:"log"`
		UI      UIConfig      `json:"ui" mapstructure:"ui"`
	}

	// ModulesConfig configures module resolution.
	ModulesConfig struct {
		// DependencyDir is searched for bare specifiers in the requiring
		// directory and each of its ancestors.
		DependencyDir string `json:"dependency_dir" mapstructure:"dependency_dir"`
	}

	// LogConfig configures diagnostic logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Modules: ModulesConfig{DependencyDir: module.DefaultDependencyDir},
		Log:     LogConfig{Level: LogLevelInfo},
		UI:      UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// Validate checks constraints the CUE schema cannot express.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	dir := c.Modules.DependencyDir
	if dir == "" || dir == "." || dir == ".." || strings.ContainsAny(dir, `/\`) {
		errs = append(errs, fmt.Errorf("%w: %q must be a single directory name", ErrInvalidDependencyDir, dir))
	}
	return errors.Join(errs...)
}

// Validate reports whether s is a known color scheme.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: auto, dark, light)", ErrInvalidColorScheme, s)
	}
}

// Validate reports whether l is a known log level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, l)
	}
}

// Level converts l to a charmbracelet/log level, defaulting to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
