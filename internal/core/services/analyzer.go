package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driving.DatasetAnalyzer = (*Analyzer)(nil)

const (
	// shortAnswerChars flags answers worth a manual look. Pairs this
	// terse pass the quality gate but rarely teach the model much.
	shortAnswerChars = 100

	// signatureChars is the prefix length used for duplicate detection.
	// Near-identical pairs diverge late; their openings do not.
	signatureChars = 50
)

// Analyzer computes corpus-level statistics over the formatted output
// directory. It is read-only and safe to run while generation is in
// progress; it simply reports whatever outputs exist right now.
type Analyzer struct {
	outputs driven.OutputStore
}

// NewAnalyzer creates a dataset analyzer.
func NewAnalyzer(outputs driven.OutputStore) *Analyzer {
	return &Analyzer{outputs: outputs}
}

// Analyze reads every stored output and summarises the corpus.
func (a *Analyzer) Analyze(ctx context.Context) (*domain.AnalysisReport, error) {
	ids, err := a.outputs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}

	report := &domain.AnalysisReport{
		TypeDistribution: make(map[string]int),
	}

	var questionChars, answerChars int
	seen := make(map[string]struct{})

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := a.outputs.Load(ctx, id)
		if err != nil {
			logger.Warn("Skipping output %s: %v", id, err)
			continue
		}

		report.Documents++
		docType := metaString(out.Metadata, "doc_type", domain.DocTypeDocument.String())

		for _, pair := range out.QAPairs {
			report.TotalPairs++
			report.TypeDistribution[docType]++
			questionChars += len(pair.Question)
			answerChars += len(pair.Answer)

			if len(pair.Answer) < shortAnswerChars {
				report.ShortPairs++
			}

			sig := signature(pair)
			if _, dup := seen[sig]; dup {
				report.Duplicates++
			} else {
				seen[sig] = struct{}{}
			}
		}
	}

	if report.TotalPairs > 0 {
		report.AvgQuestionLen = float64(questionChars) / float64(report.TotalPairs)
		report.AvgAnswerLen = float64(answerChars) / float64(report.TotalPairs)
	}

	return report, nil
}

// signature produces the duplicate-detection key for a pair: the
// lowercased opening of the question plus the answer.
func signature(pair domain.QAPair) string {
	return prefix(strings.ToLower(pair.Question)) + "|" + prefix(strings.ToLower(pair.Answer))
}

func prefix(s string) string {
	if len(s) > signatureChars {
		return s[:signatureChars]
	}
	return s
}

// metaString returns a string metadata value, or fallback when the key
// is absent or not a string.
func metaString(metadata map[string]any, key, fallback string) string {
	if v, ok := metadata[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
