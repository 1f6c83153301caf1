package code

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

func TestSupports(t *testing.T) {
	extractor := New()

	supported := []string{
		"exploit.py", "shell.c", "rop.cpp", "defs.h", "run.sh",
		"xss.js", "Main.java", "webshell.php", "brute.rb", "scan.go", "unpack.rs",
	}
	for _, name := range supported {
		assert.True(t, extractor.Supports("/data/"+name), name)
	}

	assert.False(t, extractor.Supports("/data/notes.md"))
	assert.False(t, extractor.Supports("/data/dump.bin"))
	assert.False(t, extractor.Supports("/data/Makefile"))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 40, New().Priority())
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exploit.py")
	source := "import pwn\n\npayload = b'A' * 64\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.FileID(path), doc.ID)
	assert.Equal(t, "Code: exploit.py", doc.Title)
	assert.Equal(t, domain.DocTypeCode, doc.Type)
	assert.Equal(t, source, doc.Content)
	assert.Equal(t, "py", doc.Metadata["language"])
	assert.Equal(t, "code", doc.Metadata["doc_type"])
}

func TestPathContext(t *testing.T) {
	t.Run("keyword directories collected", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "ctf-2024", "pwn")
		require.NoError(t, os.MkdirAll(dir, 0o750))
		path := filepath.Join(dir, "solve.py")
		require.NoError(t, os.WriteFile(path, []byte("print(1)"), 0o600))

		context := pathContext(path)
		assert.Contains(t, context, "ctf-2024")
		assert.Contains(t, context, "pwn")
		assert.Contains(t, context, " | ")
	})

	t.Run("sibling readme wins over other markdown", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ANALYSIS.md"), []byte("x"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o600))
		path := filepath.Join(dir, "tool.go")
		require.NoError(t, os.WriteFile(path, []byte("package main"), 0o600))

		assert.Contains(t, pathContext(path), "Documentation: README.md")
	})

	t.Run("markdown fallback", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600))
		path := filepath.Join(dir, "tool.go")
		require.NoError(t, os.WriteFile(path, []byte("package main"), 0o600))

		assert.Contains(t, pathContext(path), "Documentation: notes.md")
	})

	t.Run("no clues", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tool.go")
		require.NoError(t, os.WriteFile(path, []byte("package main"), 0o600))

		assert.Equal(t, "General code file", pathContext(path))
	})
}
