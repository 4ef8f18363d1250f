// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"slices"
	"strings"
)

// APIEntry describes one script-visible builtin.
type APIEntry struct {
	Name        string
	Signature   string
	Description string
}

var apiEntries = []APIEntry{
	{"__os", "string", "Operating system name"},
	{"__arch", "string", "CPU architecture"},
	{"__pid", "number", "Process ID"},
	{"__tmpdir", "string", "Temporary directory"},
	{"__homedir", "string", "Home directory of the current user"},
	{"__hostname", "string", "Host name"},
	{"__cpucount", "number", "Number of logical CPUs"},
	{"__version", "string", "jssh version"},
	{"__bin", "string", "Path of the jssh executable"},
	{"__args", "string[]", "Script arguments"},
	{"__env", "object", "Environment variables"},
	{"__filename", "string", "Absolute path of the current file"},
	{"__dirname", "string", "Directory of the current file"},
	{"require", "require(name)", "Load a module relative to the current file"},
	{"require.resolve", "require.resolve(name)", "Resolve a module path without loading it"},
	{"require.cache", "object", "Loaded modules keyed by path"},
	{"requiremodule", "requiremodule(name, dir)", "Load a module relative to dir"},
	{"module.exports", "any", "Value returned to requirers of the current module"},
	{"print", "print(...args)", "Write to stdout"},
	{"println", "println(...args)", "Write a line to stdout"},
	{"format", "format(fmt, ...args)", "Format a string"},
	{"console.log", "console.log(...args)", "Write a line to stdout"},
	{"console.error", "console.error(...args)", "Write a line to stderr"},
	{"sleep", "sleep(ms)", "Pause for ms milliseconds"},
	{"exit", "exit(code)", "Stop the script with an exit status"},
	{"base64encode", "base64encode(s)", "Base64-encode a string"},
	{"base64decode", "base64decode(s)", "Decode a base64 string"},
	{"md5", "md5(s)", "Hex MD5 digest"},
	{"sha1", "sha1(s)", "Hex SHA-1 digest"},
	{"sha256", "sha256(s)", "Hex SHA-256 digest"},
	{"fs.readdir", "fs.readdir(dir)", "List a directory"},
	{"fs.readfile", "fs.readfile(name)", "Read a file as a string"},
	{"fs.stat", "fs.stat(name)", "Describe a file"},
	{"fs.exist", "fs.exist(name)", "Report whether a path exists"},
	{"fs.writefile", "fs.writefile(name, data)", "Write a file"},
	{"fs.appendfile", "fs.appendfile(name, data)", "Append to a file"},
	{"fs.mkdir", "fs.mkdir(name)", "Create a directory and its parents"},
	{"fs.remove", "fs.remove(name)", "Remove a path recursively"},
	{"path.join", "path.join(...elem)", "Join path elements"},
	{"path.abs", "path.abs(p)", "Absolute form of a path"},
	{"path.base", "path.base(p)", "Last element of a path"},
	{"path.ext", "path.ext(p)", "Extension of a path"},
	{"path.dir", "path.dir(p)", "Directory of a path"},
	{"log.debug", "log.debug(...args)", "Log at debug level"},
	{"log.info", "log.info(...args)", "Log at info level"},
	{"log.warn", "log.warn(...args)", "Log at warn level"},
	{"log.error", "log.error(...args)", "Log at error level"},
	{"log.fatal", "log.fatal(...args)", "Log at error level and exit 1"},
}

// API returns every builtin in declaration order.
func API() []APIEntry {
	return slices.Clone(apiEntries)
}

// Complete returns the builtins whose name starts with prefix, ignoring case.
func Complete(prefix string) []APIEntry {
	prefix = strings.ToLower(prefix)
	var out []APIEntry
	for _, e := range apiEntries {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			out = append(out, e)
		}
	}
	return out
}
