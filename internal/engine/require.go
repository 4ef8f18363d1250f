// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"

	"jssh-cli/internal/module"

	"github.com/dop251/goja"
)

// newRequire builds the JS require function for a bound Require. The
// returned function also carries resolve and a read-only cache view.
func (r *Runtime) newRequire(req *module.Require) *goja.Object {
	fn := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		name := r.specifierArg(call.Argument(0))
		v, err := req.Require(name)
		if err != nil {
			return r.throwRequireError(err)
		}
		return r.toValue(v)
	}).ToObject(r.vm)

	resolve := func(call goja.FunctionCall) goja.Value {
		name := r.specifierArg(call.Argument(0))
		filename, err := req.Resolve(name)
		if err != nil {
			return r.throwRequireError(err)
		}
		return r.vm.ToValue(filename)
	}
	if err := fn.Set("resolve", resolve); err != nil {
		panic(r.vm.NewGoError(err))
	}

	cache := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.cacheObject()
	})
	if err := fn.DefineAccessorProperty("cache", cache, nil, goja.FLAG_FALSE, goja.FLAG_TRUE); err != nil {
		panic(r.vm.NewGoError(err))
	}
	return fn
}

// newModuleObject builds the module binding. Its exports property reads and
// writes the Module record so a replacement is visible to later requires,
// including circular ones.
func (r *Runtime) newModuleObject(ctx *module.Context, require *goja.Object) *goja.Object {
	m := r.vm.NewObject()
	getExports := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.toValue(ctx.Module.Exports())
	})
	setExports := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		ctx.Module.SetExports(call.Argument(0))
		return goja.Undefined()
	})
	getLoaded := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(ctx.Module.Loaded())
	})

	for _, err := range []error{
		m.DefineAccessorProperty("exports", getExports, setExports, goja.FLAG_FALSE, goja.FLAG_TRUE),
		m.DefineAccessorProperty("loaded", getLoaded, nil, goja.FLAG_FALSE, goja.FLAG_TRUE),
		m.Set("id", ctx.Filename()),
		m.Set("filename", ctx.Filename()),
		m.Set("path", ctx.Dirname()),
		m.Set("require", require),
	} {
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
	}
	return m
}

// cacheObject snapshots the module cache as {filename: exports}.
func (r *Runtime) cacheObject() goja.Value {
	obj := r.vm.NewObject()
	cache := r.loader.Cache()
	for _, filename := range cache.Paths() {
		m, _ := cache.Get(filename)
		_ = obj.Set(filename, r.toValue(m.Exports()))
	}
	return obj
}

// specifierArg validates the first argument of require and require.resolve.
func (r *Runtime) specifierArg(v goja.Value) string {
	name, ok := v.Export().(string)
	if !ok {
		panic(r.vm.NewTypeError("module name expected string type"))
	}
	return name
}

// throwRequireError raises err as a JS exception. A pending exit is
// re-raised instead so it cannot be caught by the requiring script.
func (r *Runtime) throwRequireError(err error) goja.Value {
	if r.exited {
		r.vm.Interrupt(errExit)
		return goja.Undefined()
	}

	var argErr *module.ArgumentError
	if errors.As(err, &argErr) {
		panic(r.vm.NewTypeError(argErr.Message))
	}

	obj := r.vm.NewGoError(err)
	var resErr *module.ResolutionError
	if errors.As(err, &resErr) {
		_ = obj.Set("moduleName", resErr.Specifier)
	}
	var loadErr *module.LoadError
	if errors.As(err, &loadErr) {
		_ = obj.Set("moduleName", loadErr.Specifier)
		_ = obj.Set("resolvedFilename", loadErr.Filename)
		_ = obj.Set("originError", r.originValue(loadErr.Cause))
	}
	panic(obj)
}

// originValue returns the value originally thrown by a failed module, or a
// wrapped Go error for host failures.
func (r *Runtime) originValue(cause error) goja.Value {
	var ex *goja.Exception
	if errors.As(cause, &ex) {
		return ex.Value()
	}
	return r.vm.NewGoError(cause)
}
