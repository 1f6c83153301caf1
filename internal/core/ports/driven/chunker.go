package driven

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// Chunker splits extracted document content into overlapping chunks.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits the document into word-window chunks carrying the
	// document's title and type. Returns at least one chunk for any
	// document with content.
	Chunk(ctx context.Context, doc *domain.ExtractedDocument) ([]domain.Chunk, error)
}
