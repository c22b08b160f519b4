package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/snapdoc/internal/policy"
)

const treeIndent = "    "

// Tree renders the indented directory listing used by the metadata section.
// Every directory that survives pruning appears as "name/", indented four
// spaces per nesting level; included files are listed one level deeper.
// Entries within a directory come out in lexicographic order.
//
// Unreadable subdirectories are skipped, mirroring Collect; the walk there
// already surfaced the errors.
func Tree(root, ext string, fs *policy.FilterSet) (string, error) {
	absRoot, err := checkRoot(root)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeTreeLevel(&b, absRoot, filepath.Base(absRoot), 0, ext, fs)
	return b.String(), nil
}

// writeTreeLevel emits one directory and recurses into its subdirectories.
func writeTreeLevel(b *strings.Builder, dir, name string, level int, ext string, fs *policy.FilterSet) {
	indent := strings.Repeat(treeIndent, level)
	fmt.Fprintf(b, "%s%s/\n", indent, name)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	// os.ReadDir returns entries sorted by name, which gives the required
	// lexicographic order within each directory.
	fileIndent := strings.Repeat(treeIndent, level+1)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if Classify(entry.Name(), ext, fs) != Excluded {
			fmt.Fprintf(b, "%s%s\n", fileIndent, entry.Name())
		}
	}
	for _, entry := range entries {
		if !entry.IsDir() || fs.ExcludesDir(entry.Name()) {
			continue
		}
		writeTreeLevel(b, filepath.Join(dir, entry.Name()), entry.Name(), level+1, ext, fs)
	}
}
