// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"custom dependency dir", func(c *Config) { c.Modules.DependencyDir = "vendor" }, nil},
		{"empty dependency dir", func(c *Config) { c.Modules.DependencyDir = "" }, ErrInvalidDependencyDir},
		{"dot dependency dir", func(c *Config) { c.Modules.DependencyDir = "." }, ErrInvalidDependencyDir},
		{"parent dependency dir", func(c *Config) { c.Modules.DependencyDir = ".." }, ErrInvalidDependencyDir},
		{"separator in dependency dir", func(c *Config) { c.Modules.DependencyDir = "a/b" }, ErrInvalidDependencyDir},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, ErrInvalidLogLevel},
		{"bad color scheme", func(c *Config) { c.UI.ColorScheme = "blue" }, ErrInvalidColorScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Log.Level = "trace"
	cfg.UI.ColorScheme = "blue"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidLogLevel) || !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Validate() = %v, want both log level and color scheme errors", err)
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   LogLevel
		want log.Level
	}{
		{LogLevelDebug, log.DebugLevel},
		{LogLevelInfo, log.InfoLevel},
		{LogLevelWarn, log.WarnLevel},
		{LogLevelError, log.ErrorLevel},
		{"bogus", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()
			if got := tt.in.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}
