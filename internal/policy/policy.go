// Package policy defines the static filter rules that decide which files a
// snapshot includes. Each supported extension category carries its own rule
// bundle, and a shared "common" bundle applies to every run.
package policy

// Category identifies one supported extension family.
type Category string

// Supported categories. The set is closed: anything else is rejected before
// traversal begins.
const (
	CategoryPython Category = "python"
	CategoryDart   Category = "dart"
	CategorySQL    Category = "sql"
)

// Rules is the default filter bundle for one category: directory names to
// prune, file names to drop, extension suffixes to drop, and file names to
// always include regardless of extension.
type Rules struct {
	ExcludeDirs       []string
	ExcludeFiles      []string
	ExcludeExtensions []string
	IncludeFiles      []string
}

// extensionCategories maps a requested extension to its category key.
var extensionCategories = map[string]Category{
	"py":   CategoryPython,
	"dart": CategoryDart,
	"sql":  CategorySQL,
}

// commonRules applies to every category.
var commonRules = Rules{
	ExcludeDirs: []string{
		".vscode",
		".idea",
		".git",
		".githook",
		".githooks",
		".aider.tags.cache.v3",
	},
	ExcludeFiles: []string{".gitignore", ".gitkeep"},
	IncludeFiles: []string{"makefile"},
}

// categoryRules holds the per-category defaults.
var categoryRules = map[Category]Rules{
	CategoryPython: {
		ExcludeDirs:       []string{".venv", "venv", "__pycache__", ".mypy_cache"},
		ExcludeFiles:      []string{"__init__.py"},
		ExcludeExtensions: []string{".pyc"},
		IncludeFiles: []string{
			"dockerfile",
			"docker-compose.yml",
			"docker-compose.yaml",
		},
	},
	CategoryDart: {
		ExcludeDirs: []string{
			"ios",
			"android",
			"macos",
			"window",
			"web",
			"build",
			"assets",
			".dart_tool",
		},
		ExcludeExtensions: []string{".g.dart", ".gr.dart"},
		IncludeFiles:      []string{"pubspec.yaml"},
	},
	CategorySQL: {},
}

// SupportedExtensions returns the closed set of extensions snapdoc accepts,
// sorted for stable help and error text.
func SupportedExtensions() []string {
	return []string{"dart", "py", "sql"}
}

// IsSupported reports whether ext is one of the supported extensions.
func IsSupported(ext string) bool {
	_, ok := extensionCategories[ext]
	return ok
}

// Lookup returns the default rules for the given extension's category.
// The boolean is false when the extension is not supported.
func Lookup(ext string) (Rules, bool) {
	cat, ok := extensionCategories[ext]
	if !ok {
		return Rules{}, false
	}
	return categoryRules[cat], true
}

// Common returns the rules shared by every category.
func Common() Rules {
	return commonRules
}
