// Package scanner walks a directory tree and classifies files against a
// resolved filter set. It is the single source of truth for which files end
// up in a snapshot: the code section and the metadata tree listing are both
// driven by the same classification.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/snapdoc/internal/policy"
)

// ErrPathNotFound is returned when the snapshot root does not exist.
var ErrPathNotFound = errors.New("path not found")

// Classification is the outcome of the inclusion predicate for one file.
type Classification int

const (
	// Excluded files do not appear in the snapshot.
	Excluded Classification = iota
	// Target files match the requested extension.
	Target
	// Infrastructure files match an always-included name (build and
	// dependency manifests) regardless of extension.
	Infrastructure
)

// Result contains the outcome of one directory walk.
type Result struct {
	// TargetFiles holds absolute paths of files matching the requested
	// extension. Unordered; callers sort before rendering.
	TargetFiles []string
	// InfraFiles holds absolute paths of always-included files.
	InfraFiles []string
	// Errors contains non-fatal errors encountered during the walk, one per
	// unreadable directory entry. The affected subtrees are skipped.
	Errors []error
}

// Classify applies the inclusion predicate to a single filename. The checks
// run in order: excluded name, excluded suffix, target extension,
// always-included name.
func Classify(name, ext string, fs *policy.FilterSet) Classification {
	if fs.ExcludesFile(name) {
		return Excluded
	}
	if strings.HasSuffix(name, "."+ext) {
		return Target
	}
	if fs.AlwaysIncludes(name) {
		return Infrastructure
	}
	return Excluded
}

// Collect walks the tree rooted at root and classifies every file that
// survives directory pruning. Directories whose name is in the filter set's
// excluded-directories collection are never descended into.
//
// Unreadable directories are skipped and their errors collected in the
// result; they never abort the walk. A missing root fails immediately with
// ErrPathNotFound.
func Collect(root, ext string, fs *policy.FilterSet) (*Result, error) {
	absRoot, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("reading %s: %w", path, err))
			return nil // Skip the entry, keep walking.
		}

		if d.IsDir() {
			if path != absRoot && fs.ExcludesDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		switch Classify(d.Name(), ext, fs) {
		case Target:
			result.TargetFiles = append(result.TargetFiles, path)
		case Infrastructure:
			result.InfraFiles = append(result.InfraFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// checkRoot validates the snapshot root and returns its absolute path.
func checkRoot(root string) (string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q", ErrPathNotFound, root)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return filepath.Abs(root)
}
