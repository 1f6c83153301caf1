package driven

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// ChunkStore persists per-document chunk sets, one record per document
// keyed by the stable file ID.
type ChunkStore interface {
	// Save writes a chunk set, overwriting any previous record.
	Save(ctx context.Context, set *domain.ChunkSet) error

	// Load reads the chunk set for a file ID.
	// Returns domain.ErrNotFound when absent and domain.ErrCorruptChunkSet
	// when present but undecodable.
	Load(ctx context.Context, fileID string) (*domain.ChunkSet, error)

	// List returns the file IDs of all stored chunk sets, sorted.
	List(ctx context.Context) ([]string, error)

	// Exists reports whether a chunk set is stored for the file ID.
	Exists(ctx context.Context, fileID string) (bool, error)
}
