// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"jssh-cli/internal/engine"
	"jssh-cli/internal/issue"
	"jssh-cli/internal/module"
)

func TestClassifyScriptError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"missing script", fmt.Errorf("open x.js: %w", fs.ErrNotExist), issue.ScriptNotFoundId},
		{"unreadable script", fmt.Errorf("open x.js: %w", fs.ErrPermission), issue.PermissionDeniedId},
		{"unresolvable module", &module.ResolutionError{Specifier: "dep", BaseDir: "/proj"}, issue.ModuleNotFoundId},
		{"broken module", &module.LoadError{Specifier: "./lib", Filename: "/proj/lib.js", Cause: errors.New("boom")}, issue.ModuleLoadFailedId},
		{"script exception", errors.New("Error: boom at main.js:1:7(3)"), issue.ScriptExecutionFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := classifyScriptError("main.js", tt.err)

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("classifyScriptError() = %T, want *issue.ActionableError", err)
			}
			if ae.IssueId != tt.want {
				t.Errorf("IssueId = %d, want %d", ae.IssueId, tt.want)
			}
			if ae.Resource != "main.js" || ae.Operation != "run script" {
				t.Errorf("context = %q %q", ae.Operation, ae.Resource)
			}
			if !errors.Is(err, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, true); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("run script").
		WithSuggestion("Check the path").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to run script: plain failure") || !strings.Contains(got, "• Check the path") {
		t.Errorf("formatErrorForDisplay(actionable) = %q", got)
	}
	if strings.Contains(got, "Error chain") {
		t.Error("non-verbose output should not include the error chain")
	}
}

func TestAPIMarkdown(t *testing.T) {
	t.Parallel()

	md := apiMarkdown(engine.Complete("path."))
	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 2+len(engine.Complete("path.")) {
		t.Fatalf("apiMarkdown() has %d lines:\n%s", len(lines), md)
	}
	if !strings.HasPrefix(lines[0], "| Name |") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(md, "| path.join | path.join(...elem) |") {
		t.Errorf("apiMarkdown() missing path.join row:\n%s", md)
	}
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/proj/src/lib/index.js":     "",
		"/proj/node_modules/dep.js":  "",
		"/proj/src/deep/placeholder": "",
	}

	tests := []struct {
		name     string
		args     []string
		want     string
		wantFail bool
	}{
		{"relative", []string{"resolve", "./lib", "--from", "/proj/src"}, "/proj/src/lib/index.js\n", false},
		{"ancestor dependency", []string{"resolve", "dep", "--from", "/proj/src/deep"}, "/proj/node_modules/dep.js\n", false},
		{"missing", []string{"resolve", "nope", "--from", "/proj"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, stubConfig{}, files, tt.args...)
			if tt.wantFail {
				var exitErr *ExitError
				if !errors.As(res.err, &exitErr) {
					t.Fatalf("Execute() error = %v, want *ExitError", res.err)
				}
				if !strings.Contains(res.stderr, `cannot resolve module "nope"`) {
					t.Errorf("stderr = %q", res.stderr)
				}
				return
			}
			if res.err != nil {
				t.Fatalf("Execute() error = %v", res.err)
			}
			if res.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestResolveCommand_VerboseListsSearchPaths(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, map[string]string{
		"/proj/node_modules/dep.js": "",
		"/proj/src/":                "",
	}, "-v", "resolve", "dep", "--from", "/proj/src")

	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	for _, want := range []string{"Search paths:", "/proj/src/node_modules", "/proj/node_modules", "/node_modules"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
}

func TestEvalCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"number", "1 + 2", "3\n"},
		{"object", "({a: 1})", "{\"a\":1}\n"},
		{"undefined prints nothing", "undefined", ""},
		{"null prints nothing", "null", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, stubConfig{}, nil, "eval", tt.code)
			if res.err != nil {
				t.Fatalf("Execute() error = %v", res.err)
			}
			if res.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestConfigDumpCommand(t *testing.T) {
	t.Parallel()

	cfg := stubConfig{}
	res := runCLI(t, cfg, nil, "config", "dump")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.Contains(res.stdout, `dependency_dir: "node_modules"`) {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestConfigShowCommand(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{source: "/etc/jssh/config.cue"}, nil, "config", "show")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	for _, want := range []string{"Current Configuration", "/etc/jssh/config.cue", "dependency_dir", "node_modules", "color_scheme"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestAPICommand(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, nil, "api", "fs.read")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	for _, want := range []string{"fs.readdir", "fs.readfile"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}

	res = runCLI(t, stubConfig{}, nil, "api", "nothing")
	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("Execute() error = %v, want exit code 1", res.err)
	}
}
