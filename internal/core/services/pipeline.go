package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineRunner = (*Pipeline)(nil)

// preflightTimeout bounds the backend liveness probe that runs before
// any work is committed.
const preflightTimeout = 5 * time.Second

// Pipeline coordinates Q&A generation across stored chunk sets. Each
// pending document is loaded, its chunks sent through the generator,
// the responses parsed and gated, and the surviving pairs persisted as
// one formatted output. Documents already holding a usable output are
// skipped, which is what makes interrupted runs resumable.
type Pipeline struct {
	chunks    driven.ChunkStore
	outputs   driven.OutputStore
	generator *Generator
	parser    *ResponseParser
	gate      *QualityGate
	builder   *PromptBuilder

	minChunkChars    int
	workers          int
	progressInterval int

	// Run state
	mu        sync.RWMutex
	running   bool
	completed int
	stats     domain.RunStats
}

// NewPipeline creates a generation pipeline.
func NewPipeline(
	chunks driven.ChunkStore,
	outputs driven.OutputStore,
	generator *Generator,
	parser *ResponseParser,
	gate *QualityGate,
	builder *PromptBuilder,
	cfg domain.GenerationSettings,
) *Pipeline {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		chunks:           chunks,
		outputs:          outputs,
		generator:        generator,
		parser:           parser,
		gate:             gate,
		builder:          builder,
		minChunkChars:    cfg.MinChunkChars,
		workers:          workers,
		progressInterval: cfg.ProgressInterval,
	}
}

// Run generates Q&A pairs for every unprocessed chunk set.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunStats, error) {
	// 1. Preflight: refuse to commit to any work while the backend is down
	pingCtx, cancel := context.WithTimeout(ctx, preflightTimeout)
	err := p.generator.Ping(pingCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	// 2. Discover pending work: every chunk set without a usable output
	ids, err := p.chunks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chunk sets: %w", err)
	}

	pending := make([]string, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		if p.outputs.IsProcessed(ctx, id) {
			skipped++
			continue
		}
		pending = append(pending, id)
	}

	p.mu.Lock()
	p.running = true
	p.completed = 0
	p.stats = domain.RunStats{Found: len(ids), AlreadyProcessed: skipped}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	logger.Info("Found %d chunk sets: %d already processed, %d to do",
		len(ids), skipped, len(pending))

	if len(pending) == 0 {
		stats := p.snapshot()
		return &stats, nil
	}

	logger.Info("Generating with model %s", p.generator.ModelName())

	// 3. Process pending documents, at most workers at a time
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)
	total := len(pending)

	for _, fileID := range pending {
		fileID := fileID
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			p.processDocument(groupCtx, fileID)

			p.mu.Lock()
			p.completed++
			done := p.completed
			p.mu.Unlock()

			if p.progressInterval > 0 && done%p.progressInterval == 0 {
				logger.Info("Progress: %d/%d documents", done, total)
			}
			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		stats := p.snapshot()
		return &stats, err
	}

	// 4. Summarise the run
	stats := p.snapshot()
	logger.Info("Generation finished: %d processed, %d failed, %d pairs (%d filtered)",
		stats.Processed, stats.Failed, stats.TotalPairs, stats.QualityFiltered)

	if stats.TotalFailure() {
		return &stats, fmt.Errorf("all %d pending documents failed", stats.Pending())
	}
	return &stats, nil
}

// Status returns a snapshot of the current run.
func (p *Pipeline) Status() *driving.PipelineStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &driving.PipelineStatus{
		Running:            p.running,
		DocumentsProcessed: p.stats.Processed,
		PairsGenerated:     p.stats.TotalPairs,
		ErrorCount:         p.stats.Failed,
	}
}

// processDocument generates and persists pairs for one chunk set.
// Failures are counted, never propagated: one broken document must not
// stop the batch. Pairs are buffered across all chunks and written in
// a single save, so a partially generated document never looks done.
func (p *Pipeline) processDocument(ctx context.Context, fileID string) {
	set, err := p.chunks.Load(ctx, fileID)
	if err != nil {
		logger.Warn("Skipping %s: %v", fileID, err)
		p.recordFailure()
		return
	}

	var pairs []domain.QAPair
	rejected := 0

	for i, chunk := range set.Chunks {
		if ctx.Err() != nil {
			return
		}

		if len(strings.TrimSpace(chunk.Text)) < p.minChunkChars {
			logger.Debug("Chunk %d of %s: below %d chars, skipped", i, fileID, p.minChunkChars)
			continue
		}

		prompt, err := p.builder.Build(chunk)
		if err != nil {
			logger.Warn("Chunk %d of %s: %v", i, fileID, err)
			continue
		}

		raw, err := p.generator.Generate(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Chunk %d of %s: %v", i, fileID, err)
			continue
		}

		accepted, filtered := 0, 0
		for _, candidate := range p.parser.Parse(raw) {
			if !p.gate.Accept(candidate.Question, candidate.Answer) {
				filtered++
				continue
			}
			pairs = append(pairs, domain.QAPair{
				Question: p.gate.Clean(candidate.Question),
				Answer:   p.gate.Clean(candidate.Answer),
			})
			accepted++
		}
		rejected += filtered

		logger.Debug("Chunk %d of %s: %d pairs accepted, %d rejected", i, fileID, accepted, filtered)
	}

	p.mu.Lock()
	p.stats.QualityFiltered += rejected
	p.mu.Unlock()

	if len(pairs) == 0 {
		logger.Warn("No usable pairs for %s (%s)", fileID, set.FilePath)
		p.recordFailure()
		return
	}

	out := &domain.FormattedOutput{
		SourceFile: set.FilePath,
		Metadata:   set.Metadata,
		QAPairs:    pairs,
		Stats: domain.OutputStats{
			ChunksProcessed:  len(set.Chunks),
			QAPairsGenerated: len(pairs),
		},
	}

	if err := p.outputs.Save(ctx, fileID, out); err != nil {
		logger.Error("Saving output for %s: %v", fileID, err)
		p.recordFailure()
		return
	}

	p.mu.Lock()
	p.stats.Processed++
	p.stats.TotalPairs += len(pairs)
	p.mu.Unlock()

	logger.Info("Generated %d pairs for %s", len(pairs), set.FilePath)
}

func (p *Pipeline) recordFailure() {
	p.mu.Lock()
	p.stats.Failed++
	p.mu.Unlock()
}

func (p *Pipeline) snapshot() domain.RunStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}
