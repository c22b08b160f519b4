package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedExtension is returned when the requested extension is not in
// the closed set of supported categories.
var ErrUnsupportedExtension = errors.New("unsupported extension")

// FilterSet is the resolved, per-run union of the common rules, the category
// rules, and any caller-supplied extra excluded directories. Membership tests
// are exact string or suffix matches, never patterns. A FilterSet is built
// once per run and never mutated afterwards.
type FilterSet struct {
	excludeDirs       map[string]bool
	excludeFiles      map[string]bool
	excludeExtensions []string
	includeFiles      map[string]bool
}

// Resolve merges the common policy, the category policy for ext, and any
// extra excluded directories into one immutable FilterSet.
func Resolve(ext string, extraExcludeDirs []string) (*FilterSet, error) {
	rules, ok := Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedExtension, ext, strings.Join(SupportedExtensions(), ", "))
	}

	fs := &FilterSet{
		excludeDirs:  make(map[string]bool),
		excludeFiles: make(map[string]bool),
		includeFiles: make(map[string]bool),
	}

	for _, r := range []Rules{Common(), rules} {
		for _, d := range r.ExcludeDirs {
			fs.excludeDirs[d] = true
		}
		for _, f := range r.ExcludeFiles {
			fs.excludeFiles[f] = true
		}
		fs.excludeExtensions = append(fs.excludeExtensions, r.ExcludeExtensions...)
		for _, f := range r.IncludeFiles {
			// Always-included names match case-insensitively.
			fs.includeFiles[strings.ToLower(f)] = true
		}
	}

	for _, d := range extraExcludeDirs {
		fs.excludeDirs[d] = true
	}

	return fs, nil
}

// ExcludesDir reports whether a directory with the given name is pruned.
func (fs *FilterSet) ExcludesDir(name string) bool {
	return fs.excludeDirs[name]
}

// ExcludesFile reports whether the filename is dropped by name or by one of
// the excluded extension suffixes.
func (fs *FilterSet) ExcludesFile(name string) bool {
	if fs.excludeFiles[name] {
		return true
	}
	for _, ext := range fs.excludeExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// AlwaysIncludes reports whether the filename is an always-included
// infrastructure name. The comparison is case-insensitive.
func (fs *FilterSet) AlwaysIncludes(name string) bool {
	return fs.includeFiles[strings.ToLower(name)]
}
