package driving

import (
	"context"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// DatasetAnalyzer summarises the generated corpus for inspection.
type DatasetAnalyzer interface {
	// Analyze reads every stored output and reports corpus-level
	// statistics: totals, average lengths, document type distribution,
	// and likely duplicate pairs.
	Analyze(ctx context.Context) (*domain.AnalysisReport, error)
}
