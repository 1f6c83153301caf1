// Package plaintext extracts plain text documents.
package plaintext

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

// Extractor handles plain text documents. It is the fallback for
// text-bearing files no specialised extractor claims.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the extractor claims the path.
func (e *Extractor) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".rst", ".log":
		return true
	}
	return false
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 10
}

// Extract reads the file verbatim, using the bare filename stem as title.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
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
	case containsAny(lower, "challenge", "ctf"):
		return domain.DocTypeChallenge
	case containsAny(lower, "log", "output"):
		return domain.DocTypeLog
	default:
		return domain.DocTypeText
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
