package driving

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// ExtractionRunner turns raw input files into stored chunk sets.
type ExtractionRunner interface {
	// Run discovers files under the data directory, extracts and chunks
	// each one, and persists a chunk set per document. Files whose chunk
	// set already exists are skipped when skip_existing is enabled.
	Run(ctx context.Context) (*domain.ExtractionStats, error)

	// Watch runs an initial extraction pass and then processes files as
	// they appear or change, until ctx is cancelled.
	Watch(ctx context.Context) error
}
