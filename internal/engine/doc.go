// SPDX-License-Identifier: MPL-2.0

// Package engine hosts jssh scripts on an embedded ECMAScript runtime (goja).
//
// A Runtime owns one goja VM and one module.Loader. It implements
// module.Engine, so every module loaded through require is compiled as
//
//	(function (exports, require, module, __filename, __dirname) { <body>
//	})
//
// with the body starting on the wrapper's first line; error positions in a
// module therefore match the file. The wrapped source must parse as that one
// function expression, so a body cannot close the wrapper and run code
// outside it. The top-level script is not wrapped: it
// runs as a plain script with __filename, __dirname and a require bound to
// its directory defined as globals.
//
// Host builtins (fs, path, log, console, print, format, exit, ...) are
// installed on the global object by New. A Runtime must only be used from
// one goroutine at a time.
package engine
