// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"github.com/dop251/goja"
)

// scriptLogPrefix marks log lines emitted by scripts.
const scriptLogPrefix = "script"

// newLogObject routes script logging through the runtime logger. fatal logs
// at error level and exits with status 1.
func (r *Runtime) newLogObject() *goja.Object {
	logger := r.logger.WithPrefix(scriptLogPrefix)
	obj := r.vm.NewObject()

	_ = obj.Set("debug", func(call goja.FunctionCall) goja.Value {
		logger.Debug(r.format(call.Arguments))
		return goja.Undefined()
	})
	_ = obj.Set("info", func(call goja.FunctionCall) goja.Value {
		logger.Info(r.format(call.Arguments))
		return goja.Undefined()
	})
	_ = obj.Set("warn", func(call goja.FunctionCall) goja.Value {
		logger.Warn(r.format(call.Arguments))
		return goja.Undefined()
	})
	_ = obj.Set("error", func(call goja.FunctionCall) goja.Value {
		logger.Error(r.format(call.Arguments))
		return goja.Undefined()
	})
	_ = obj.Set("fatal", func(call goja.FunctionCall) goja.Value {
		logger.Error(r.format(call.Arguments))
		r.exit(1)
		return goja.Undefined()
	})

	return obj
}
