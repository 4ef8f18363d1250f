// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dop251/goja"
)

// installBuiltins defines host globals and helper objects on the VM.
func (r *Runtime) installBuiltins() {
	r.installGlobals()

	r.set("global", r.vm.GlobalObject())
	r.set("requiremodule", func(call goja.FunctionCall) goja.Value {
		name := r.specifierArg(call.Argument(0))
		v, err := r.loader.Require(name, r.dirArg(call.Argument(1)))
		if err != nil {
			return r.throwRequireError(err)
		}
		return r.toValue(v)
	})

	r.set("print", func(call goja.FunctionCall) goja.Value {
		fmt.Fprint(r.stdout, r.format(call.Arguments))
		return goja.Undefined()
	})
	r.set("println", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(r.stdout, r.format(call.Arguments))
		return goja.Undefined()
	})
	r.set("format", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(r.format(call.Arguments))
	})
	r.set("sleep", func(ms int64) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	})
	r.set("exit", func(call goja.FunctionCall) goja.Value {
		r.exit(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	})

	r.set("base64encode", func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	})
	r.set("base64decode", func(s string) string {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return string(b)
	})
	r.set("md5", func(s string) string {
		sum := md5.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	})
	r.set("sha1", func(s string) string {
		sum := sha1.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	})
	r.set("sha256", func(s string) string {
		sum := sha256.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	})

	console := r.vm.NewObject()
	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(r.stdout, r.join(call.Arguments))
		return goja.Undefined()
	})
	_ = console.Set("error", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(r.stderr, r.join(call.Arguments))
		return goja.Undefined()
	})
	r.set("console", console)

	r.set("fs", r.newFSObject())
	r.set("path", r.newPathObject())
	r.set("log", r.newLogObject())
}

// dirArg returns the base directory argument of requiremodule. An omitted
// directory means the top-level __dirname; null is passed on as "" so it
// fails argument validation.
func (r *Runtime) dirArg(v goja.Value) string {
	switch {
	case goja.IsUndefined(v):
		if dir := r.vm.Get("__dirname"); dir != nil && !goja.IsUndefined(dir) {
			return dir.String()
		}
		return ""
	case goja.IsNull(v):
		return ""
	}
	return v.String()
}

func (r *Runtime) installGlobals() {
	home, _ := os.UserHomeDir()
	host, _ := os.Hostname()
	bin, _ := os.Executable()

	r.set("__os", runtime.GOOS)
	r.set("__arch", runtime.GOARCH)
	r.set("__pid", os.Getpid())
	r.set("__tmpdir", os.TempDir())
	r.set("__homedir", home)
	r.set("__hostname", host)
	r.set("__cpucount", runtime.NumCPU())
	r.set("__version", r.opts.Version)
	r.set("__bin", bin)

	args := make([]any, len(r.opts.Args))
	for i, a := range r.opts.Args {
		args[i] = a
	}
	r.set("__args", r.vm.NewArray(args...))

	env := r.vm.NewObject()
	for _, kv := range r.opts.Env {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			_ = env.Set(k, v)
		}
	}
	r.set("__env", env)
}

// format renders arguments printf-style when the first one is a string
// containing a verb, and space-joined otherwise.
func (r *Runtime) format(args []goja.Value) string {
	if len(args) > 1 {
		if f, ok := args[0].Export().(string); ok && strings.Contains(f, "%") {
			rest := make([]any, len(args)-1)
			for i, a := range args[1:] {
				rest[i] = a.Export()
			}
			return fmt.Sprintf(f, rest...)
		}
	}
	return r.join(args)
}

func (r *Runtime) join(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.inspect(a)
	}
	return strings.Join(parts, " ")
}

// inspect renders plain objects and arrays as JSON.
func (r *Runtime) inspect(v goja.Value) string {
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.String()
	}
	if _, isFn := goja.AssertFunction(obj); isFn || obj.ClassName() == "Error" {
		return v.String()
	}
	out, err := r.jsonStringify(goja.Undefined(), obj)
	if err != nil || goja.IsUndefined(out) {
		return v.String()
	}
	return out.String()
}
