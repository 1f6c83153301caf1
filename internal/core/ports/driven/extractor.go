package driven

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// Extractor turns one source file into an ExtractedDocument.
// Each extractor handles specific file extensions (PDF, Markdown, code).
// A failed or empty extraction yields an error; the caller logs it and
// moves on - extraction failures are never fatal to a run.
type Extractor interface {
	// Supports reports whether this extractor claims the given path.
	Supports(path string) bool

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract reads the file and returns the extracted document.
	Extract(ctx context.Context, path string) (*domain.ExtractedDocument, error)
}

// ExtractorRegistry selects the extractor for a path.
type ExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(e Extractor)

	// For returns the highest-priority extractor claiming the path,
	// or domain.ErrUnsupportedFile when none does.
	For(path string) (Extractor, error)
}

// CommandRunner executes an external command and returns its combined
// output. Extractors that shell out to system tools (tesseract) take a
// runner so tests can substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
