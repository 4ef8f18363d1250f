// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"jssh-cli/internal/config"
	"jssh-cli/internal/engine"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. All command handlers
	// receive an App and read configuration and output streams through it.
	App struct {
		Config ConfigProvider
		FS     afero.Fs
		stdout io.Writer
		stderr io.Writer

		flags  rootFlags
		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		FS     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Source(opts config.LoadOptions) (string, error)
	}

	// rootFlags holds persistent flag values.
	rootFlags struct {
		verbose    bool
		configFile string
		logLevel   string
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config: deps.Config,
		FS:     deps.FS,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.New(io.Discard),
	}
}

// loadOptions returns the config loading options selected by flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configFile}
}

// prepare loads configuration and builds the logger. A configuration error
// is reported as a warning and defaults are used instead.
func (a *App) prepare(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}

	level := cfg.Log.Level
	switch {
	case a.flags.logLevel != "":
		level = config.LogLevel(a.flags.logLevel)
		if err := level.Validate(); err != nil {
			return err
		}
	case cfg.UI.Verbose:
		level = config.LogLevelDebug
	}
	cfg.Log.Level = level

	a.cfg = cfg
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level.Level(),
	})
	return nil
}

// verbose reports whether verbose output is enabled by flag or config.
func (a *App) verbose() bool {
	return a.flags.verbose || a.cfg.UI.Verbose
}

// newRuntime creates a script runtime configured from the loaded config.
func (a *App) newRuntime(args []string) *engine.Runtime {
	return engine.New(engine.Options{
		FS:            a.FS,
		Logger:        a.logger,
		Stdout:        a.stdout,
		Stderr:        a.stderr,
		Args:          args,
		DependencyDir: a.cfg.Modules.DependencyDir,
		Version:       Version,
	})
}
