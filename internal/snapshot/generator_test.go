package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/snapdoc/internal/policy"
	"github.com/harrison/snapdoc/internal/scanner"
)

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.py":            "print('main')\n",
		"app/api.py":         "print('api')\n",
		"app/__init__.py":    "",
		"app/api.pyc":        "binary",
		".venv/lib/x.py":     "hidden",
		"Dockerfile":         "FROM python:3.12\n",
		"docker-compose.yml": "services: {}\n",
		"README.md":          "readme\n",
	}
	for name, content := range files {
		full := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestGenerate(t *testing.T) {
	root := setupProject(t)

	snap, err := Generate(Params{Root: root, Extension: "py", Verify: true})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TargetCount)
	assert.Equal(t, 2, snap.InfraCount)
	assert.Empty(t, snap.ScanErrors)
	assert.Equal(t, filepath.Base(root), snap.Title)

	doc := snap.Document
	assert.True(t, strings.HasPrefix(doc, "# Files for "+snap.Title+"\n"))
	assert.Contains(t, doc, "### main.py")
	assert.Contains(t, doc, "### "+filepath.Join("app", "api.py"))
	assert.Contains(t, doc, "```docker\nFROM python:3.12\n")
	assert.NotContains(t, doc, ".venv")
	assert.NotContains(t, doc, "__init__.py")
	assert.NotContains(t, doc, "README.md")
}

func TestGenerate_TitleOverride(t *testing.T) {
	root := setupProject(t)

	snap, err := Generate(Params{Root: root, Extension: "py", Title: "My Service"})
	require.NoError(t, err)

	assert.Equal(t, "My Service", snap.Title)
	assert.Contains(t, snap.Document, "# Files for My Service\n")
}

func TestGenerate_ExtraExcludeDirs(t *testing.T) {
	root := setupProject(t)

	snap, err := Generate(Params{
		Root:             root,
		Extension:        "py",
		ExtraExcludeDirs: []string{"app"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, snap.TargetCount)
	assert.NotContains(t, snap.Document, "api.py")
	// Built-in exclusions still apply alongside the extras.
	assert.NotContains(t, snap.Document, ".venv")
}

func TestGenerate_UnsupportedExtension(t *testing.T) {
	root := setupProject(t)

	_, err := Generate(Params{Root: root, Extension: "go"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, policy.ErrUnsupportedExtension))
}

func TestGenerate_PathNotFound(t *testing.T) {
	_, err := Generate(Params{
		Root:      filepath.Join(t.TempDir(), "missing"),
		Extension: "py",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scanner.ErrPathNotFound))
}

func TestGenerate_ValidationBeforeTraversal(t *testing.T) {
	// Extension validation happens before the root is touched: a bad
	// extension wins even when the root is also missing.
	_, err := Generate(Params{
		Root:      filepath.Join(t.TempDir(), "missing"),
		Extension: "go",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, policy.ErrUnsupportedExtension))
}

func TestGenerate_Idempotent(t *testing.T) {
	root := setupProject(t)

	first, err := Generate(Params{Root: root, Extension: "py"})
	require.NoError(t, err)
	second, err := Generate(Params{Root: root, Extension: "py"})
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
}
