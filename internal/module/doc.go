// SPDX-License-Identifier: MPL-2.0

// Package module implements CommonJS-style module resolution and loading for
// the jssh script runtime.
//
// A Loader turns a specifier (a relative path, a bare name, or a directory)
// plus a base directory into an absolute file path, loads that file at most
// once per Loader, and returns its exported value. Resolution follows these
// rules, first match wins:
//
//   - "." and specifiers starting with "./" or "/" are joined against the
//     base directory.
//   - Any other specifier, "../x" included, is joined to the dependency
//     directory ("node_modules" by default) of the base directory and of each
//     ancestor, nearest first, up to the filesystem root.
//   - A candidate that is a file is used as is. A candidate directory is
//     resolved through the "main" field of its package.json, else through
//     index, index.json, index.js. A missing candidate is tried with the
//     .json and .js extensions, then as a directory index.
//
// Files ending in .json (and the explicit data formats .yaml, .yml, .toml and
// .cue) are data modules: their content is decoded and returned directly.
// Everything else is evaluated by the Engine with a module-scoped require,
// module object, __filename and __dirname.
//
// The module cache is keyed by resolved path. A module's record is inserted
// before its body runs, so a circular require observes the exports object as
// populated so far instead of re-entering the module. Failed loads are
// removed from the cache.
//
// A Loader is not safe for concurrent use; script evaluation is
// single-threaded.
package module
