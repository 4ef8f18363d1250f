// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"path/filepath"

	"github.com/dop251/goja"
)

func (r *Runtime) newPathObject() *goja.Object {
	obj := r.vm.NewObject()
	_ = obj.Set("join", func(elem ...string) string {
		return filepath.Join(elem...)
	})
	_ = obj.Set("abs", func(p string) string {
		abs, err := filepath.Abs(p)
		r.check(err)
		return abs
	})
	_ = obj.Set("base", filepath.Base)
	_ = obj.Set("ext", filepath.Ext)
	_ = obj.Set("dir", filepath.Dir)
	_ = obj.Set("sep", string(filepath.Separator))
	return obj
}
