// Package pdf extracts text content from PDF documents.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the extractor claims the path.
func (e *Extractor) Supports(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract reads the PDF and returns its page text joined with blank
// lines. Pages without extractable text are dropped; a PDF yielding no
// text at all is reported as an empty document.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	content := strings.Join(pages, "\n\n")
	if content == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
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
			"num_pages": numPages,
			"title":     title,
			"doc_type":  docType.String(),
		},
	}, nil
}

// classify infers the document type from keywords anywhere in the path.
func classify(path string) domain.DocType {
	lower := strings.ToLower(path)

	switch {
	case containsAny(lower, "writeup", "solution", "walkthrough"):
		return domain.DocTypeWriteup
	case containsAny(lower, "research", "paper", "analysis", "evaluation"):
		return domain.DocTypeResearchPaper
	case containsAny(lower, "challenge", "ctf", "competition"):
		return domain.DocTypeChallenge
	default:
		return domain.DocTypeDocument
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
