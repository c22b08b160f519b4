package render

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Verify re-parses a rendered document and checks its structure: one title
// heading, the Metadata and Code section headings, one level-3 heading per
// included file, and one fenced block per file plus the tree listing.
// fileCount is the number of files the document is expected to contain.
func Verify(doc []byte, fileCount int) error {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(doc))

	var h1, h2, h3, fences int
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 1:
				h1++
			case 2:
				h2++
			case 3:
				h3++
			}
		case *ast.FencedCodeBlock:
			fences++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk document: %w", err)
	}

	if h1 != 1 {
		return fmt.Errorf("document has %d title headings, want 1", h1)
	}
	if h2 != 2 {
		return fmt.Errorf("document has %d section headings, want 2 (Metadata, Code)", h2)
	}
	if h3 != fileCount {
		return fmt.Errorf("document has %d file headings, want %d", h3, fileCount)
	}
	// One fence per file plus the tree listing in the metadata section.
	if fences != fileCount+1 {
		return fmt.Errorf("document has %d fenced blocks, want %d", fences, fileCount+1)
	}
	return nil
}
