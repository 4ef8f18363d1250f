// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"slices"
	"testing"

	"jssh-cli/internal/testutil"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     testutil.Files
		specifier string
		baseDir   string
		want      string
	}{
		{
			name:      "relative file used as is",
			files:     testutil.Files{"/proj/util.js": ""},
			specifier: "./util.js",
			baseDir:   "/proj",
			want:      "/proj/util.js",
		},
		{
			name:      "existing file without extension is not extended",
			files:     testutil.Files{"/proj/util": "", "/proj/util.js": ""},
			specifier: "./util",
			baseDir:   "/proj",
			want:      "/proj/util",
		},
		{
			name:      "json inferred before js",
			files:     testutil.Files{"/proj/conf.json": "{}", "/proj/conf.js": ""},
			specifier: "./conf",
			baseDir:   "/proj",
			want:      "/proj/conf.json",
		},
		{
			name:      "js inferred",
			files:     testutil.Files{"/proj/lib/a.js": ""},
			specifier: "./lib/a",
			baseDir:   "/proj",
			want:      "/proj/lib/a.js",
		},
		{
			name: "package main",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"main": "lib/entry.js"}`,
				"/proj/pkg/lib/entry.js": "",
				"/proj/pkg/index.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/lib/entry.js",
		},
		{
			name: "package main is resolved recursively",
			files: testutil.Files{
				"/proj/pkg/package.json":     `{"main": "lib"}`,
				"/proj/pkg/lib/package.json": `{"main": "./start"}`,
				"/proj/pkg/lib/start.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/lib/start.js",
		},
		{
			name: "package without main falls back to index",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"name": "pkg"}`,
				"/proj/pkg/index.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/index.js",
		},
		{
			name: "malformed package descriptor falls back to index",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"main": `,
				"/proj/pkg/index.json":   "{}",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/index.json",
		},
		{
			name: "non-string main is ignored",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"main": 3}`,
				"/proj/pkg/index.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/index.js",
		},
		{
			name: "verbatim index wins over extensions",
			files: testutil.Files{
				"/proj/pkg/index":      "",
				"/proj/pkg/index.json": "{}",
				"/proj/pkg/index.js":   "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/index",
		},
		{
			name: "index.json before index.js",
			files: testutil.Files{
				"/proj/pkg/index.json": "{}",
				"/proj/pkg/index.js":   "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
			want:      "/proj/pkg/index.json",
		},
		{
			name:      "dot resolves the base directory index",
			files:     testutil.Files{"/proj/index.js": ""},
			specifier: ".",
			baseDir:   "/proj",
			want:      "/proj/index.js",
		},
		{
			name:      "parent specifier reached through the ancestor search",
			files:     testutil.Files{"/proj/shared.js": ""},
			specifier: "../shared",
			baseDir:   "/proj/lib",
			want:      "/proj/shared.js",
		},
		{
			name:      "parent specifier prefers the base directory",
			files:     testutil.Files{"/a/b/x.js": "", "/a/x.js": ""},
			specifier: "../x",
			baseDir:   "/a/b",
			want:      "/a/b/x.js",
		},
		{
			name:      "leading slash joins against base",
			files:     testutil.Files{"/proj/lib/x.js": ""},
			specifier: "/lib/x",
			baseDir:   "/proj",
			want:      "/proj/lib/x.js",
		},
		{
			name:      "directory named like a candidate is skipped",
			files:     testutil.Files{"/proj/tool.json/": "", "/proj/tool.js": ""},
			specifier: "./tool",
			baseDir:   "/proj",
			want:      "/proj/tool.js",
		},
		{
			name:      "bare name in nearest dependency dir",
			files:     testutil.Files{"/proj/node_modules/left/index.js": "", "/node_modules/left/index.js": ""},
			specifier: "left",
			baseDir:   "/proj",
			want:      "/proj/node_modules/left/index.js",
		},
		{
			name:      "bare name found in an ancestor",
			files:     testutil.Files{"/node_modules/pad.js": "", "/proj/src/deep/": ""},
			specifier: "pad",
			baseDir:   "/proj/src/deep",
			want:      "/node_modules/pad.js",
		},
		{
			name: "bare name with subpath and package",
			files: testutil.Files{
				"/proj/node_modules/kit/package.json":  `{"main": "dist/kit.js"}`,
				"/proj/node_modules/kit/dist/kit.js":   "",
				"/proj/node_modules/kit/extra/more.js": "",
			},
			specifier: "kit/extra/more",
			baseDir:   "/proj",
			want:      "/proj/node_modules/kit/extra/more.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResolver(testutil.NewMemFS(t, tt.files), "", nil)
			got, err := r.Resolve(tt.specifier, tt.baseDir)
			if err != nil {
				t.Fatalf("Resolve(%q, %q) error = %v", tt.specifier, tt.baseDir, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.specifier, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestResolver_ResolveFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     testutil.Files
		specifier string
		baseDir   string
	}{
		{
			name:      "missing relative module",
			files:     testutil.Files{"/proj/": ""},
			specifier: "./nope",
			baseDir:   "/proj",
		},
		{
			name:      "relative specifier does not search dependency dirs",
			files:     testutil.Files{"/proj/node_modules/util.js": ""},
			specifier: "./util",
			baseDir:   "/proj",
		},
		{
			name:      "bare name is not looked up next to the base",
			files:     testutil.Files{"/proj/util.js": ""},
			specifier: "util",
			baseDir:   "/proj",
		},
		{
			name: "package main pointing at itself",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"main": "."}`,
				"/proj/pkg/index.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
		},
		{
			name: "unresolvable main does not fall back to index",
			files: testutil.Files{
				"/proj/pkg/package.json": `{"main": "missing.js"}`,
				"/proj/pkg/index.js":     "",
			},
			specifier: "./pkg",
			baseDir:   "/proj",
		},
		{
			name:      "empty directory",
			files:     testutil.Files{"/proj/empty/": ""},
			specifier: "./empty",
			baseDir:   "/proj",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResolver(testutil.NewMemFS(t, tt.files), "", nil)
			_, err := r.Resolve(tt.specifier, tt.baseDir)
			var resErr *ResolutionError
			if !errors.As(err, &resErr) {
				t.Fatalf("Resolve() error = %v, want *ResolutionError", err)
			}
			if resErr.Specifier != tt.specifier || resErr.BaseDir != tt.baseDir {
				t.Errorf("ResolutionError = %+v", resErr)
			}
			if !errors.Is(err, ErrCannotResolve) {
				t.Error("errors.Is(err, ErrCannotResolve) = false")
			}
		})
	}
}

func TestResolver_ArgumentErrors(t *testing.T) {
	t.Parallel()

	r := NewResolver(testutil.NewMemFS(t, nil), "", nil)

	tests := []struct {
		name      string
		specifier string
		baseDir   string
		want      string
	}{
		{name: "empty specifier", specifier: "", baseDir: "/proj", want: "empty module name"},
		{name: "empty base dir", specifier: "./x", baseDir: "", want: "empty module dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Resolve(tt.specifier, tt.baseDir)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("Resolve() error = %v, want *ArgumentError", err)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			if errors.Is(err, ErrCannotResolve) {
				t.Error("argument errors must not match ErrCannotResolve")
			}
		})
	}
}

func TestResolver_SearchPaths(t *testing.T) {
	t.Parallel()

	r := NewResolver(testutil.NewMemFS(t, nil), "", nil)
	got := r.SearchPaths("/a/b")
	want := []string{"/a/b/node_modules", "/a/node_modules", "/node_modules"}
	if !slices.Equal(got, want) {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}
}

func TestResolver_CustomDependencyDir(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemFS(t, testutil.Files{
		"/proj/node_modules/dep.js": "",
		"/proj/jssh_modules/dep.js": "",
	})
	r := NewResolver(fs, "jssh_modules", nil)

	got, err := r.Resolve("dep", "/proj")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/proj/jssh_modules/dep.js" {
		t.Errorf("Resolve() = %q, want /proj/jssh_modules/dep.js", got)
	}
}

func TestResolver_Deterministic(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemFS(t, testutil.Files{
		"/proj/node_modules/a/index.json": "{}",
		"/proj/node_modules/a/index.js":   "",
		"/node_modules/a.js":              "",
	})
	r := NewResolver(fs, "", nil)

	first, err := r.Resolve("a", "/proj/src")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for range 5 {
		again, err := r.Resolve("a", "/proj/src")
		if err != nil || again != first {
			t.Fatalf("Resolve() = %q, %v; want %q", again, err, first)
		}
	}
	if first != "/proj/node_modules/a/index.json" {
		t.Errorf("Resolve() = %q, want /proj/node_modules/a/index.json", first)
	}
}

func TestIsPathSpecifier(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		".":        true,
		"..":       false,
		"./x":      true,
		"../x":     false,
		"/x":       true,
		"x":        false,
		".hidden":  false,
		"@scope/x": false,
		"x/./y":    false,
	}
	for spec, want := range tests {
		if got := IsPathSpecifier(spec); got != want {
			t.Errorf("IsPathSpecifier(%q) = %v, want %v", spec, got, want)
		}
	}
}
