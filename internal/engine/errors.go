// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"

	"github.com/dop251/goja"
)

// HostError returns the Go error carried by a JS exception raised from host
// code, such as a failed require that was not caught by the script. It
// returns nil for exceptions thrown by script code.
func HostError(err error) error {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return nil
	}
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		return nil
	}
	v := obj.Get("value")
	if v == nil {
		return nil
	}
	if hostErr, ok := v.Export().(error); ok {
		return hostErr
	}
	return nil
}

// Inspect renders v the way console.log does.
func (r *Runtime) Inspect(v goja.Value) string {
	return r.inspect(v)
}
