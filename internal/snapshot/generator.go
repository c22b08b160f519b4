// Package snapshot ties the filter policy, the directory scanner, and the
// markdown renderer together into one run: parameters in, rendered document
// out. It performs no writes; persisting the document is the caller's job.
package snapshot

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/snapdoc/internal/policy"
	"github.com/harrison/snapdoc/internal/render"
	"github.com/harrison/snapdoc/internal/scanner"
)

// Params describes one snapshot run. Supplied once at invocation and
// immutable for the run's duration.
type Params struct {
	// Root is the directory to snapshot.
	Root string
	// Extension selects the file category (py, dart, sql).
	Extension string
	// Title overrides the document title. Empty means the last path segment
	// of Root.
	Title string
	// ExtraExcludeDirs are unioned with the built-in excluded directories.
	ExtraExcludeDirs []string
	// Verify re-parses the rendered markdown and checks its structure.
	Verify bool
}

// Snapshot is the outcome of one run.
type Snapshot struct {
	// Document is the complete rendered markdown text.
	Document string
	// Title is the resolved document title.
	Title string
	// TargetCount and InfraCount are the file counts reported in the
	// metadata section.
	TargetCount int
	InfraCount  int
	// ScanErrors holds non-fatal directory read errors. The affected
	// subtrees were skipped; the document is still complete for everything
	// readable.
	ScanErrors []error
}

// Generate runs the full pipeline: resolve the filter set, walk the tree,
// and render the document. Validation errors (unsupported extension, missing
// root) fail the run before anything is rendered.
func Generate(params Params) (*Snapshot, error) {
	fs, err := policy.Resolve(params.Extension, params.ExtraExcludeDirs)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(params.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", params.Root, err)
	}

	result, err := scanner.Collect(absRoot, params.Extension, fs)
	if err != nil {
		return nil, err
	}

	tree, err := scanner.Tree(absRoot, params.Extension, fs)
	if err != nil {
		return nil, err
	}

	title := params.Title
	if title == "" {
		title = filepath.Base(absRoot)
	}

	doc := render.Document(absRoot, title, params.Extension, result, tree)

	if params.Verify {
		fileCount := len(result.TargetFiles) + len(result.InfraFiles)
		if err := render.Verify([]byte(doc), fileCount); err != nil {
			return nil, fmt.Errorf("rendered document failed verification: %w", err)
		}
	}

	return &Snapshot{
		Document:    doc,
		Title:       title,
		TargetCount: len(result.TargetFiles),
		InfraCount:  len(result.InfraFiles),
		ScanErrors:  result.Errors,
	}, nil
}
