// Package markdown extracts content from Markdown documents.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the extractor claims the path.
func (e *Extractor) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract reads the file as-is. Markdown formatting is kept: headings
// and code fences carry meaning the generation prompt can use.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	title := extractTitle(content, path)
	docType := classify(path)

	return &domain.ExtractedDocument{
		ID:      domain.FileID(path),
		Path:    path,
		Title:   title,
		Type:    docType,
		Content: content,
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"file_path": path,
			"title":     title,
			"doc_type":  docType.String(),
		},
	}, nil
}

// extractTitle takes the first H1 heading, falling back to a
// title-cased filename.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return cases.Title(language.English).String(stem)
}

// classify infers the document type from keywords anywhere in the path.
func classify(path string) domain.DocType {
	lower := strings.ToLower(path)

	switch {
	case containsAny(lower, "writeup", "solution", "walkthrough"):
		return domain.DocTypeWriteup
	case containsAny(lower, "readme", "documentation", "guide"):
		return domain.DocTypeDocumentation
	case containsAny(lower, "cheat", "reference", "resource"):
		return domain.DocTypeReference
	default:
		return domain.DocTypeDocumentation
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
