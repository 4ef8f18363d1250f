// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"os"

	"github.com/dop251/goja"
	"github.com/spf13/afero"
)

// newFSObject exposes the runtime filesystem to scripts. Failures are thrown
// as JS errors.
func (r *Runtime) newFSObject() *goja.Object {
	obj := r.vm.NewObject()

	_ = obj.Set("readdir", func(dir string) goja.Value {
		infos, err := afero.ReadDir(r.fs, dir)
		r.check(err)
		items := make([]any, len(infos))
		for i, info := range infos {
			items[i] = r.fileInfoObject(info)
		}
		return r.vm.NewArray(items...)
	})
	_ = obj.Set("readfile", func(name string) string {
		data, err := afero.ReadFile(r.fs, name)
		r.check(err)
		return string(data)
	})
	_ = obj.Set("stat", func(name string) goja.Value {
		info, err := r.fs.Stat(name)
		r.check(err)
		return r.fileInfoObject(info)
	})
	_ = obj.Set("exist", func(name string) bool {
		ok, err := afero.Exists(r.fs, name)
		r.check(err)
		return ok
	})
	_ = obj.Set("writefile", func(name, data string) bool {
		r.check(afero.WriteFile(r.fs, name, []byte(data), 0o644))
		return true
	})
	_ = obj.Set("appendfile", func(name, data string) bool {
		f, err := r.fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		r.check(err)
		_, err = f.WriteString(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		r.check(err)
		return true
	})
	_ = obj.Set("mkdir", func(name string) bool {
		r.check(r.fs.MkdirAll(name, 0o755))
		return true
	})
	_ = obj.Set("remove", func(name string) bool {
		r.check(r.fs.RemoveAll(name))
		return true
	})

	return obj
}

func (r *Runtime) fileInfoObject(info os.FileInfo) *goja.Object {
	obj := r.vm.NewObject()
	_ = obj.Set("name", info.Name())
	_ = obj.Set("isdir", info.IsDir())
	_ = obj.Set("size", info.Size())
	_ = obj.Set("mode", info.Mode().String())
	_ = obj.Set("modtime", info.ModTime().UnixMilli())
	return obj
}

// check throws err into the running script.
func (r *Runtime) check(err error) {
	if err != nil {
		panic(r.vm.NewGoError(err))
	}
}
