package driven

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// OutputStore persists per-document formatted outputs, one record per
// document keyed by the same file ID as the chunk set.
type OutputStore interface {
	// Save writes a formatted output, overwriting any previous record.
	Save(ctx context.Context, fileID string, out *domain.FormattedOutput) error

	// Load reads the formatted output for a file ID.
	// Returns domain.ErrNotFound when absent.
	Load(ctx context.Context, fileID string) (*domain.FormattedOutput, error)

	// IsProcessed reports whether a usable output exists for the file ID:
	// present, decodable, and holding at least one pair. A corrupt or
	// empty record reports false so the document is retried.
	IsProcessed(ctx context.Context, fileID string) bool

	// List returns the file IDs of all stored outputs, sorted.
	List(ctx context.Context) ([]string, error)
}
