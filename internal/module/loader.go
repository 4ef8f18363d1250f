// SPDX-License-Identifier: MPL-2.0

package module

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// Engine is the script runtime the Loader delegates evaluation to.
	Engine interface {
		// NewExports returns a fresh, empty exports container.
		NewExports() any
		// ParseData turns JSON text into an engine value.
		ParseData(filename string, data []byte) (any, error)
		// Evaluate runs src as the body of the module described by ctx, under
		// the logical name filename. The body may mutate ctx.Exports or
		// replace the module's exports through ctx.Module.SetExports.
		Evaluate(filename, src string, ctx *Context) error
	}

	// Option configures a Loader.
	Option func(*Loader)

	// Loader resolves, loads and caches modules for one runtime.
	Loader struct {
		fs            afero.Fs
		engine        Engine
		resolver      *Resolver
		cache         *Cache
		decoders      map[string]DataDecoder
		dependencyDir string
		logger        *log.Logger
	}
)

// WithFS sets the filesystem modules are read from. Defaults to the OS filesystem.
func WithFS(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithDependencyDir sets the directory name searched for bare specifiers.
func WithDependencyDir(name string) Option {
	return func(l *Loader) {
		l.dependencyDir = name
	}
}

// WithLogger sets the logger used for resolution and load tracing.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDataDecoder registers decoder for files ending in ext (including the dot).
func WithDataDecoder(ext string, decoder DataDecoder) Option {
	return func(l *Loader) {
		l.decoders[ext] = decoder
	}
}

// NewLoader creates a Loader evaluating source modules with engine.
func NewLoader(engine Engine, opts ...Option) *Loader {
	l := &Loader{
		fs:       afero.NewOsFs(),
		engine:   engine,
		cache:    NewCache(),
		decoders: defaultDecoders(),
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.resolver = NewResolver(l.fs, l.dependencyDir, l.logger)
	return l
}

// FS returns the filesystem the loader reads from.
func (l *Loader) FS() afero.Fs {
	return l.fs
}

// Resolver returns the loader's path resolver.
func (l *Loader) Resolver() *Resolver {
	return l.resolver
}

// Cache returns the loader's module cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Resolve resolves specifier against baseDir without loading it.
func (l *Loader) Resolve(specifier, baseDir string) (string, error) {
	return l.resolver.Resolve(specifier, baseDir)
}

// Require resolves specifier against baseDir and returns the exported value
// of the resulting module, loading it on first use. Failures are reported as
// *ArgumentError, *ResolutionError or *LoadError.
func (l *Loader) Require(specifier, baseDir string) (any, error) {
	filename, err := l.resolver.Resolve(specifier, baseDir)
	if err != nil {
		return nil, err
	}

	exports, err := l.getOrLoad(filename)
	if err != nil {
		return nil, &LoadError{Specifier: specifier, Filename: filename, Cause: err}
	}
	return exports, nil
}

// getOrLoad returns the cached exports for filename or loads the file. A
// record that is still loading yields its exports as populated so far.
func (l *Loader) getOrLoad(filename string) (any, error) {
	if m, ok := l.cache.Get(filename); ok {
		if m.Loaded() {
			l.logger.Debug("module cache hit", "path", filename)
		} else {
			l.logger.Debug("circular require", "path", filename)
		}
		return m.Exports(), nil
	}

	if decoder, ok := l.decoders[filepath.Ext(filename)]; ok {
		return l.loadData(filename, decoder)
	}
	return l.loadSource(filename)
}

func (l *Loader) loadData(filename string, decoder DataDecoder) (any, error) {
	raw, err := afero.ReadFile(l.fs, filename)
	if err != nil {
		return nil, err
	}

	doc, err := decoder(filename, raw)
	if err != nil {
		return nil, err
	}

	value, err := l.engine.ParseData(filename, doc)
	if err != nil {
		return nil, err
	}

	l.cache.put(&Module{
		Filename: filename,
		Dirname:  filepath.Dir(filename),
		exports:  value,
		loaded:   true,
	})
	l.logger.Debug("loaded data module", "path", filename)
	return value, nil
}

func (l *Loader) loadSource(filename string) (any, error) {
	raw, err := afero.ReadFile(l.fs, filename)
	if err != nil {
		return nil, err
	}

	ctx := l.newContext(filename)
	// Registered before evaluation so circular requires see partial exports.
	l.cache.put(ctx.Module)

	l.logger.Debug("evaluate module", "path", filename)
	if err := l.engine.Evaluate(filename, StripShebang(string(raw)), ctx); err != nil {
		l.cache.remove(filename)
		return nil, err
	}
	ctx.Module.loaded = true

	l.logger.Debug("loaded module", "path", filename)
	return ctx.Module.Exports(), nil
}

// StripShebang removes a leading "#!" line from src. The newline ending that
// line is kept so line numbers in the remaining source are unchanged.
func StripShebang(src string) string {
	if !strings.HasPrefix(src, "#!") {
		return src
	}
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return src[i:]
	}
	return ""
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

