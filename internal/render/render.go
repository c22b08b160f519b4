// Package render produces the markdown snapshot document from the collected
// file lists. Rendering is pure string assembly; the only filesystem access
// is reading the content of each included file, and a failed read is rendered
// inline rather than aborting the run.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/snapdoc/internal/scanner"
)

// Header renders the level-1 title heading.
func Header(title string) string {
	return fmt.Sprintf("# Files for %s\n\n", title)
}

// Metadata renders the metadata section: target and infrastructure counts
// followed by the fenced directory tree listing.
func Metadata(ext string, targetCount, infraCount int, tree string) string {
	var b strings.Builder
	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(&b, "- Total number of '%s' files: %d\n", ext, targetCount)
	fmt.Fprintf(&b, "- Total number of Infrastructure files: %d\n\n", infraCount)
	fence := fenceFor(tree)
	b.WriteString(fence + "\n")
	b.WriteString(tree)
	b.WriteString(fence + "\n\n")
	return b.String()
}

// Code renders the code section: one level-3 heading and fenced block per
// file, in the order given. Paths in headings are relative to root. A file
// that cannot be read gets its error message as the block body and rendering
// continues.
func Code(root, ext string, files []string) string {
	var b strings.Builder
	b.WriteString("## Code\n\n")

	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		body := ""
		if data, err := os.ReadFile(path); err != nil {
			body = fmt.Sprintf("error reading %s: %v", rel, err)
		} else {
			body = string(data)
		}

		fence := fenceFor(body)
		fmt.Fprintf(&b, "### %s\n\n", rel)
		fmt.Fprintf(&b, "%s%s\n%s\n%s\n\n", fence, LanguageTag(filepath.Base(path), ext), body, fence)
	}
	return b.String()
}

// fenceFor returns a backtick fence longer than any backtick run in body, so
// a file that itself contains fenced markdown cannot terminate its block
// early. Three backticks is the floor.
func fenceFor(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := longest + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

// LanguageTag derives the fenced-block language tag for a filename. Known
// infrastructure names get their own tag; everything else uses the requested
// extension. The name comparison is case-insensitive.
func LanguageTag(name, ext string) string {
	switch strings.ToLower(name) {
	case "dockerfile":
		return "docker"
	case "docker-compose.yml", "docker-compose.yaml":
		return "yaml"
	case "makefile":
		return "makefile"
	default:
		return ext
	}
}

// Document assembles the complete snapshot: header, metadata, and the code
// section over the union of target and infrastructure files sorted
// lexicographically by path. Traversal order never leaks into the output.
func Document(root, title, ext string, result *scanner.Result, tree string) string {
	files := make([]string, 0, len(result.TargetFiles)+len(result.InfraFiles))
	files = append(files, result.TargetFiles...)
	files = append(files, result.InfraFiles...)
	sort.Strings(files)

	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString(Metadata(ext, len(result.TargetFiles), len(result.InfraFiles), tree))
	b.WriteString(Code(root, ext, files))
	return b.String()
}
