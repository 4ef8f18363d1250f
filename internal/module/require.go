// SPDX-License-Identifier: MPL-2.0

package module

import "path/filepath"

type (
	// Module is the record of one loaded (or loading) file. Its exports may be
	// replaced while the module body runs; the value observed once the body
	// completes is the module's exported value.
	Module struct {
		// Filename is the absolute resolved path of the module.
		Filename string
		// Dirname is the directory containing Filename.
		Dirname string

		exports any
		loaded  bool
	}

	// Context holds the bindings visible to an evaluating module: its own
	// identity, a require bound to its directory, and the initial exports
	// container.
	Context struct {
		Module  *Module
		Require *Require
		// Exports is the exports container the module started with. Engines
		// expose it as the module-local "exports" binding.
		Exports any
	}

	// Require is a require entry point bound to a fixed base directory. The
	// base directory belongs to the module that owns the Require, not to
	// whoever ends up calling it.
	Require struct {
		loader *Loader
		dir    string
	}
)

// Exports returns the module's current exported value.
func (m *Module) Exports() any {
	return m.exports
}

// SetExports replaces the module's exported value.
func (m *Module) SetExports(v any) {
	m.exports = v
}

// Loaded reports whether the module body ran to completion.
func (m *Module) Loaded() bool {
	return m.loaded
}

// Filename returns the evaluating module's absolute path.
func (c *Context) Filename() string {
	return c.Module.Filename
}

// Dirname returns the evaluating module's directory.
func (c *Context) Dirname() string {
	return c.Module.Dirname
}

// Dir returns the base directory specifiers are resolved against.
func (r *Require) Dir() string {
	return r.dir
}

// Require loads specifier relative to the bound directory.
func (r *Require) Require(specifier string) (any, error) {
	return r.loader.Require(specifier, r.dir)
}

// Resolve resolves specifier relative to the bound directory without loading it.
func (r *Require) Resolve(specifier string) (string, error) {
	return r.loader.Resolve(specifier, r.dir)
}

// Loader returns the loader whose cache this Require shares.
func (r *Require) Loader() *Loader {
	return r.loader
}

// BindTo returns a Require whose base directory is dir. It is the entry point
// for top-level scripts, which are not modules themselves.
func (l *Loader) BindTo(dir string) *Require {
	return &Require{loader: l, dir: dir}
}

// newContext builds the execution context for the module at filename.
func (l *Loader) newContext(filename string) *Context {
	dir := filepath.Dir(filename)
	exports := l.engine.NewExports()
	return &Context{
		Module: &Module{
			Filename: filename,
			Dirname:  dir,
			exports:  exports,
		},
		Require: l.BindTo(dir),
		Exports: exports,
	}
}
