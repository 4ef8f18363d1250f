// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "run script"},
			expected: "failed to run script",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "run script",
				Resource:  "./build.js",
			},
			expected: "failed to run script: ./build.js",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "load configuration",
				Cause:     errors.New("unknown field"),
			},
			expected: "failed to load configuration: unknown field",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "resolve module",
				Resource:  "lodash",
				Cause:     errors.New("not found"),
			},
			expected: "failed to resolve module: lodash: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "simple error non-verbose",
			err:      &ActionableError{Operation: "load configuration"},
			contains: []string{"failed to load configuration"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "run script",
				Resource:    "./build.js",
				Suggestions: []string{"Check the path", "Check file permissions"},
			},
			contains: []string{
				"failed to run script",
				"./build.js",
				"• Check the path",
				"• Check file permissions",
			},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "load configuration",
				Cause:     errors.New("syntax error"),
			},
			verbose: true,
			contains: []string{
				"failed to load configuration",
				"Error chain:",
				"1. syntax error",
			},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "load configuration",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to load configuration: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "run script",
				Cause: &ActionableError{
					Operation: "load module",
					Cause:     errors.New("file not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to load module: file not found",
				"2. file not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	t.Parallel()

	if !(&ActionableError{Operation: "test", Suggestions: []string{"Try this"}}).HasSuggestions() {
		t.Error("HasSuggestions() should return true when suggestions present")
	}
	if (&ActionableError{Operation: "test"}).HasSuggestions() {
		t.Error("HasSuggestions() should return false when no suggestions")
	}
}

func TestActionableError_Issue(t *testing.T) {
	t.Parallel()

	if (&ActionableError{Operation: "test"}).Issue() != nil {
		t.Error("Issue() should be nil without an issue id")
	}

	err := &ActionableError{Operation: "resolve module", IssueId: ModuleNotFoundId}
	if got := err.Issue(); got == nil || got.Id() != ModuleNotFoundId {
		t.Errorf("Issue() = %v, want module not found entry", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("run script").
		WithResource("./missing.js").
		WithSuggestion("Check the path").
		WithSuggestions("Use an absolute path", "Check permissions").
		WithIssue(ScriptNotFoundId).
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "run script" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "./missing.js" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", err.Suggestions)
	}
	if err.IssueId != ScriptNotFoundId {
		t.Errorf("IssueId = %d, want %d", err.IssueId, ScriptNotFoundId)
	}
	if !errors.Is(err, cause) {
		t.Error("Build() should keep the cause")
	}

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() should return nil when operation missing")
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().WithOperation("test").BuildError()
	if err == nil {
		t.Fatal("BuildError() returned nil")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Error("BuildError() should return *ActionableError")
	}

	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() should return nil when operation missing")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	cause := errors.New("original error")
	err := WrapWithContext(cause, "read file", "/path/to/file")
	if err == nil {
		t.Fatal("WrapWithContext returned nil")
	}
	if err.Operation != "read file" || err.Resource != "/path/to/file" {
		t.Errorf("got operation %q resource %q", err.Operation, err.Resource)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause should be the original error")
	}

	if WrapWithContext(nil, "test", "resource") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("load module").
		WithResource("./lib").
		WithSuggestion("Check the module")

	err1 := ctx.Wrap(errors.New("error 1")).Build()
	err2 := ctx.WithSuggestion("Another hint").Wrap(errors.New("error 2")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("reused context should allow different causes")
	}
	if err1.Operation != err2.Operation {
		t.Error("reused context should preserve operation")
	}
	if len(err1.Suggestions) != 1 {
		t.Errorf("earlier build changed by later suggestion: %v", err1.Suggestions)
	}
}
