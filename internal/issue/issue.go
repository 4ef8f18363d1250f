// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	ScriptNotFoundId Id = iota + 1
	ModuleNotFoundId
	ModuleLoadFailedId
	ScriptExecutionFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is issue guidance in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry with rendered guidance for a failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

The script file passed to jssh does not exist or is not readable.

## Things you can try:
- Check the path for typos
- Run the script with an explicit path:
~~~
$ jssh ./script.js
~~~`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

A require call named a module that could not be resolved.

## How modules are found:
1. Names starting with "./", "../" or "/" are looked up relative to the requiring file
2. Other names are looked up in the dependency directory ("node_modules" by default) of the requiring file's directory and every parent
3. For each candidate, the exact file, then ".json", then ".js" is tried
4. Directories resolve through "main" in package.json, then index, index.json and index.js

## Things you can try:
- Show where a name resolves from a directory:
~~~
$ jssh resolve ./lib --from ./src
~~~

- Check the dependency directory setting:
~~~
$ jssh config show
~~~`,
	}

	moduleLoadFailedIssue = &Issue{
		id: ModuleLoadFailedId,
		mdMsg: `
# Module failed to load!

The module was found but reading, decoding or running it failed. The module
is not cached, so a later require retries it.

## Things you can try:
- Check the error above for the failing file and line
- Validate data modules (.json, .yaml, .toml, .cue) with their own tooling
- Run with verbose output to trace resolution:
~~~
$ jssh --verbose script.js
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script failed!

The script threw an exception that was not caught.

## Things you can try:
- Check the stack position printed with the error
- Wrap the failing call in try/catch to inspect the error object
- Use log.debug with --log-level debug to trace execution`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The jssh configuration file could not be read or does not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ jssh config show
~~~

- Recreate a default configuration file:
~~~
$ jssh config init
~~~

## Example configuration:
~~~cue
modules: {
	dependency_dir: "node_modules"
}
log: {
	level: "info"
}
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

jssh could not read or write a file it needed.

## Things you can try:
- Check file and directory permissions
- Run the script from a directory you own`,
	}

	issues = map[Id]*Issue{
		scriptNotFoundIssue.Id():        scriptNotFoundIssue,
		moduleNotFoundIssue.Id():        moduleNotFoundIssue,
		moduleLoadFailedIssue.Id():      moduleLoadFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
