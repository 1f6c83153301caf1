// Package code extracts source code files for Q&A generation.
package code

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// extensions lists the source file types worth generating questions from.
var extensions = map[string]bool{
	".py":   true,
	".c":    true,
	".cpp":  true,
	".h":    true,
	".sh":   true,
	".js":   true,
	".java": true,
	".php":  true,
	".rb":   true,
	".go":   true,
	".rs":   true,
}

// contextKeywords mark path components that hint at what the code is for.
var contextKeywords = []string{
	"ctf", "challenge", "exploit", "pwn", "crypto", "web", "reverse", "forensics",
}

// Extractor handles source code files.
type Extractor struct{}

// New creates a new code extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the extractor claims the path.
func (e *Extractor) Supports(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 40
}

// Extract reads the file verbatim and records the language plus any
// surrounding context the directory layout reveals.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read code file: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	language := "text"
	if ext := filepath.Ext(path); ext != "" {
		language = strings.TrimPrefix(strings.ToLower(ext), ".")
	}

	title := "Code: " + filepath.Base(path)

	return &domain.ExtractedDocument{
		ID:      domain.FileID(path),
		Path:    path,
		Title:   title,
		Type:    domain.DocTypeCode,
		Content: content,
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"file_path": path,
			"language":  language,
			"title":     title,
			"doc_type":  domain.DocTypeCode.String(),
			"context":   pathContext(path),
		},
	}, nil
}

// pathContext joins the interesting parts of the path with any sibling
// documentation file into a short description of where the code lives.
func pathContext(path string) string {
	var clues []string

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		lower := strings.ToLower(part)
		for _, keyword := range contextKeywords {
			if strings.Contains(lower, keyword) {
				clues = append(clues, part)
				break
			}
		}
	}

	if doc := siblingDoc(path); doc != "" {
		clues = append(clues, "Documentation: "+doc)
	}

	if len(clues) == 0 {
		return "General code file"
	}
	return strings.Join(clues, " | ")
}

// siblingDoc returns the first README or markdown file next to the code
// file, READMEs first.
func siblingDoc(path string) string {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return ""
	}

	var firstMarkdown string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "README") {
			return name
		}
		if firstMarkdown == "" && strings.HasSuffix(strings.ToLower(name), ".md") {
			firstMarkdown = name
		}
	}
	return firstMarkdown
}
