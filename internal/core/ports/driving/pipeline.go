package driving

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// PipelineRunner coordinates Q&A generation across stored chunk sets.
type PipelineRunner interface {
	// Run generates Q&A pairs for every unprocessed chunk set and
	// persists one formatted output per document. Already-processed
	// documents are skipped. Returns the run statistics; the error is
	// non-nil only when the run could not start or produced nothing
	// despite pending work.
	Run(ctx context.Context) (*domain.RunStats, error)

	// Status returns a snapshot of the current run.
	Status() *PipelineStatus
}

// PipelineStatus represents the current state of a generation run.
type PipelineStatus struct {
	// Running indicates if generation is currently in progress.
	Running bool

	// DocumentsProcessed is the count of documents completed so far.
	DocumentsProcessed int

	// PairsGenerated is the count of accepted Q&A pairs so far.
	PairsGenerated int

	// ErrorCount is the number of failed documents so far.
	ErrorCount int
}
