// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Files maps absolute paths to file contents. A path ending in "/" creates
// an empty directory instead of a file.
type Files map[string]string

// NewMemFS returns an in-memory filesystem populated with files.
func NewMemFS(t testing.TB, files Files) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, files)
	return fs
}

// WriteFiles writes files into fs, creating parent directories as needed.
func WriteFiles(t testing.TB, fs afero.Fs, files Files) {
	t.Helper()
	for p, content := range files {
		if strings.HasSuffix(p, "/") {
			if err := fs.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", p, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("failed to create directory %s: %v", filepath.Dir(p), err)
		}
		if err := afero.WriteFile(fs, p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
}
