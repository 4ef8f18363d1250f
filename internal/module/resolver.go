// SPDX-License-Identifier: MPL-2.0

package module

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// DataExtension marks files that are decoded as JSON instead of evaluated.
	DataExtension = ".json"
	// SourceExtension marks script source files.
	SourceExtension = ".js"

	// DefaultDependencyDir is the per-directory folder searched for bare names.
	DefaultDependencyDir = "node_modules"

	// PackageDescriptorName is the file naming a directory's entry point.
	PackageDescriptorName = "package.json"

	indexName = "index"
)

// searchExtensions is the fixed order in which extensions are inferred.
var searchExtensions = []string{DataExtension, SourceExtension}

type (
	// Resolver maps a specifier and a base directory to one absolute file path.
	Resolver struct {
		fs            afero.Fs
		dependencyDir string
		logger        *log.Logger
	}

	packageDescriptor struct {
		Main any `json:"main"`
	}
)

// NewResolver creates a Resolver probing fs. An empty dependencyDir selects
// DefaultDependencyDir; a nil logger discards output.
func NewResolver(fs afero.Fs, dependencyDir string, logger *log.Logger) *Resolver {
	if dependencyDir == "" {
		dependencyDir = DefaultDependencyDir
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Resolver{
		fs:            fs,
		dependencyDir: dependencyDir,
		logger:        logger,
	}
}

// DependencyDir returns the directory name searched for bare specifiers.
func (r *Resolver) DependencyDir() string {
	return r.dependencyDir
}

// Resolve returns the absolute path of the file specifier names when required
// from baseDir. It returns an *ArgumentError for empty inputs and a
// *ResolutionError when no candidate matches.
func (r *Resolver) Resolve(specifier, baseDir string) (string, error) {
	if err := validateArgs(specifier, baseDir); err != nil {
		return "", err
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", &ResolutionError{Specifier: specifier, BaseDir: baseDir}
	}

	if IsPathSpecifier(specifier) {
		if p, ok := r.resolveFile(filepath.Join(base, specifier), nil); ok {
			r.logger.Debug("resolved module", "specifier", specifier, "path", p)
			return p, nil
		}
		return "", &ResolutionError{Specifier: specifier, BaseDir: baseDir}
	}

	for _, dir := range r.SearchPaths(base) {
		if p, ok := r.resolveFile(filepath.Join(dir, specifier), nil); ok {
			r.logger.Debug("resolved module", "specifier", specifier, "path", p, "search_dir", dir)
			return p, nil
		}
	}
	return "", &ResolutionError{Specifier: specifier, BaseDir: baseDir}
}

// SearchPaths lists the dependency directories consulted for a bare specifier
// required from dir, nearest first, ending at the filesystem root.
func (r *Resolver) SearchPaths(dir string) []string {
	var paths []string
	for d := filepath.Clean(dir); ; {
		paths = append(paths, filepath.Join(d, r.dependencyDir))
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return paths
}

// IsPathSpecifier reports whether specifier is resolved against the base
// directory rather than searched for in dependency directories. Only ".",
// "/..." and "./..." qualify; "../x" is a bare name whose first candidate,
// <base>/node_modules/../x, is <base>/x.
func IsPathSpecifier(specifier string) bool {
	return specifier == "." ||
		strings.HasPrefix(specifier, "/") ||
		strings.HasPrefix(specifier, "./")
}

// resolveFile applies the extension and directory rules to candidate p.
// seen holds directories already entered through a package descriptor.
func (r *Resolver) resolveFile(p string, seen map[string]bool) (string, bool) {
	r.logger.Debug("resolve candidate", "path", p)

	info, err := r.fs.Stat(p)
	if err == nil && !info.IsDir() {
		return p, true
	}

	if err == nil {
		if seen == nil {
			seen = make(map[string]bool)
		}
		if seen[p] {
			r.logger.Debug("package main cycle", "dir", p)
			return "", false
		}
		seen[p] = true

		if main, ok := r.packageMain(p); ok {
			return r.resolveFile(filepath.Join(p, main), seen)
		}
		return r.resolveIndex(p)
	}

	for _, ext := range searchExtensions {
		if r.isFile(p + ext) {
			return p + ext, true
		}
	}
	return r.resolveIndex(p)
}

// resolveIndex looks for index, index.json and index.js inside dir.
func (r *Resolver) resolveIndex(dir string) (string, bool) {
	index := filepath.Join(dir, indexName)
	if r.isFile(index) {
		return index, true
	}
	for _, ext := range searchExtensions {
		if r.isFile(index + ext) {
			return index + ext, true
		}
	}
	return "", false
}

// packageMain returns the "main" entry of dir's package descriptor when the
// descriptor exists, parses, and names a non-empty string.
func (r *Resolver) packageMain(dir string) (string, bool) {
	descriptor := filepath.Join(dir, PackageDescriptorName)
	if !r.isFile(descriptor) {
		return "", false
	}

	data, err := afero.ReadFile(r.fs, descriptor)
	if err != nil {
		r.logger.Debug("unreadable package descriptor", "path", descriptor, "err", err)
		return "", false
	}

	var pkg packageDescriptor
	if err := json.Unmarshal(data, &pkg); err != nil {
		r.logger.Debug("invalid package descriptor", "path", descriptor, "err", err)
		return "", false
	}

	main, ok := pkg.Main.(string)
	if !ok || main == "" {
		return "", false
	}
	return main, true
}

func (r *Resolver) isFile(p string) bool {
	info, err := r.fs.Stat(p)
	return err == nil && !info.IsDir()
}
