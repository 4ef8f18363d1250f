// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jssh-cli/internal/module"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	"github.com/spf13/afero"
)

const (
	moduleWrapperPrefix = "(function (exports, require, module, __filename, __dirname) {"
	moduleWrapperSuffix = "\n})"

	// evalName is the logical filename of code passed to Eval.
	evalName = "<eval>"
)

var (
	// errExit is the interrupt value used by the exit builtin.
	errExit = errors.New("script exit")

	// errWrapperEscape reports module source that closes the module wrapper.
	errWrapperEscape = errors.New("module body closes the module wrapper")
)

type (
	// Options configures a Runtime. Zero values select OS defaults.
	Options struct {
		// FS backs module loading and the fs builtin.
		FS afero.Fs
		// Logger receives loader tracing and the log builtin's output.
		Logger *log.Logger
		// Stdout and Stderr receive print/console output.
		Stdout io.Writer
		Stderr io.Writer
		// Args is exposed to scripts as __args.
		Args []string
		// Env is exposed as __env, in os.Environ form.
		Env []string
		// DependencyDir overrides the directory searched for bare specifiers.
		DependencyDir string
		// Version is exposed as __version.
		Version string
	}

	// Runtime runs scripts and modules on a single goja VM.
	Runtime struct {
		vm     *goja.Runtime
		loader *module.Loader
		fs     afero.Fs
		logger *log.Logger
		stdout io.Writer
		stderr io.Writer
		opts   Options

		jsonParse     goja.Callable
		jsonStringify goja.Callable
		exited        bool
		exitCode      int
	}

	// ExitError reports that a script called exit(code).
	ExitError struct {
		Code int
	}
)

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// New creates a Runtime with builtins installed.
func New(opts Options) *Runtime {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}

	r := &Runtime{
		vm:     goja.New(),
		fs:     opts.FS,
		logger: opts.Logger,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		opts:   opts,
	}
	r.loader = module.NewLoader(r,
		module.WithFS(opts.FS),
		module.WithDependencyDir(opts.DependencyDir),
		module.WithLogger(opts.Logger),
	)

	json := r.vm.Get("JSON").ToObject(r.vm)
	parse, ok := goja.AssertFunction(json.Get("parse"))
	if !ok {
		panic("engine: JSON.parse is not callable")
	}
	stringify, ok := goja.AssertFunction(json.Get("stringify"))
	if !ok {
		panic("engine: JSON.stringify is not callable")
	}
	r.jsonParse = parse
	r.jsonStringify = stringify

	r.installBuiltins()
	return r
}

// Loader returns the runtime's module loader.
func (r *Runtime) Loader() *module.Loader {
	return r.loader
}

// VM exposes the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// RunFile runs filename as the top-level script. A leading shebang line is
// ignored. exit(code) is reported as *ExitError.
func (r *Runtime) RunFile(filename string) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	src, err := afero.ReadFile(r.fs, abs)
	if err != nil {
		return err
	}

	r.setTopLevel(abs, filepath.Dir(abs))
	r.logger.Debug("run script", "path", abs)
	_, err = r.vm.RunScript(abs, module.StripShebang(string(src)))
	return r.scriptError(err)
}

// Eval runs src as a top-level script whose require resolves against dir.
func (r *Runtime) Eval(src, dir string) (goja.Value, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	r.setTopLevel("", abs)
	v, err := r.vm.RunScript(evalName, src)
	if err != nil {
		return nil, r.scriptError(err)
	}
	return v, nil
}

// Require loads specifier relative to dir and returns its exports.
func (r *Runtime) Require(specifier, dir string) (goja.Value, error) {
	v, err := r.loader.Require(specifier, dir)
	if err != nil {
		return nil, err
	}
	return r.toValue(v), nil
}

// NewExports implements module.Engine.
func (r *Runtime) NewExports() any {
	return r.vm.NewObject()
}

// ParseData implements module.Engine using the VM's JSON.parse.
func (r *Runtime) ParseData(_ string, data []byte) (any, error) {
	v, err := r.jsonParse(goja.Undefined(), r.vm.ToValue(string(data)))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Evaluate implements module.Engine: it compiles src inside the module
// wrapper and calls it with the bindings from ctx.
func (r *Runtime) Evaluate(filename, src string, ctx *module.Context) error {
	prog, err := compileModule(filename, src)
	if err != nil {
		return err
	}

	wrapper, err := r.vm.RunProgram(prog)
	if err != nil {
		return err
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		return fmt.Errorf("%s: module wrapper is not callable", filename)
	}

	exports := r.toValue(ctx.Exports)
	require := r.newRequire(ctx.Require)
	_, err = fn(exports,
		exports,
		require,
		r.newModuleObject(ctx, require),
		r.vm.ToValue(ctx.Filename()),
		r.vm.ToValue(ctx.Dirname()),
	)
	return err
}

// compileModule wraps src in the module function and compiles it. The parsed
// program must be that single function expression; a body that closes the
// wrapper early and adds statements of its own is rejected before any of it
// runs.
func compileModule(filename, src string) (*goja.Program, error) {
	parsed, err := goja.Parse(filename, moduleWrapperPrefix+src+moduleWrapperSuffix)
	if err != nil {
		return nil, err
	}
	if !isSingleFunction(parsed) {
		return nil, fmt.Errorf("%s: %w", filename, errWrapperEscape)
	}
	return goja.CompileAST(parsed, false)
}

func isSingleFunction(prog *ast.Program) bool {
	if len(prog.Body) != 1 {
		return false
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	_, ok = stmt.Expression.(*ast.FunctionLiteral)
	return ok
}

// setTopLevel defines the globals of the script about to run.
func (r *Runtime) setTopLevel(filename, dir string) {
	r.set("__filename", filename)
	r.set("__dirname", dir)
	r.set("require", r.newRequire(r.loader.BindTo(dir)))
}

// scriptError maps a VM error to the error reported to the caller.
func (r *Runtime) scriptError(err error) error {
	if err == nil {
		return nil
	}
	if r.exited {
		r.vm.ClearInterrupt()
		return &ExitError{Code: r.exitCode}
	}
	return err
}

// exit stops the running script with code.
func (r *Runtime) exit(code int) {
	r.exited = true
	r.exitCode = code
	r.vm.Interrupt(errExit)
}

func (r *Runtime) set(name string, value any) {
	if err := r.vm.Set(name, value); err != nil {
		panic(fmt.Sprintf("engine: set global %s: %v", name, err))
	}
}

func (r *Runtime) toValue(v any) goja.Value {
	if gv, ok := v.(goja.Value); ok {
		return gv
	}
	return r.vm.ToValue(v)
}
