package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// Ensure ExtractionOrchestrator implements the interface.
var _ driving.ExtractionRunner = (*ExtractionOrchestrator)(nil)

// extractProgressEvery is the file cadence for progress logging during
// an extraction pass.
const extractProgressEvery = 100

// ExtractionOrchestrator turns raw input files into stored chunk sets:
// discover, pick an extractor, extract, chunk, persist. Extraction
// failures are counted and logged, never fatal; a single unreadable
// PDF must not sink a thousand-file pass.
type ExtractionOrchestrator struct {
	source   driven.FileSource
	registry driven.ExtractorRegistry
	chunker  driven.Chunker
	chunks   driven.ChunkStore

	skipExisting bool
	metadataDir  string
}

// NewExtractionOrchestrator creates an extraction orchestrator.
// When metadataDir is non-empty, a run summary is written there.
func NewExtractionOrchestrator(
	source driven.FileSource,
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	chunks driven.ChunkStore,
	skipExisting bool,
	metadataDir string,
) *ExtractionOrchestrator {
	return &ExtractionOrchestrator{
		source:       source,
		registry:     registry,
		chunker:      chunker,
		chunks:       chunks,
		skipExisting: skipExisting,
		metadataDir:  metadataDir,
	}
}

// Run discovers files under the data directory and persists one chunk
// set per extractable document.
func (o *ExtractionOrchestrator) Run(ctx context.Context) (*domain.ExtractionStats, error) {
	started := time.Now()

	// 1. Check the data directory before walking it
	if err := o.source.Validate(ctx); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	// 2. Discover candidate files
	paths, err := o.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	stats := &domain.ExtractionStats{FilesFound: len(paths)}
	logger.Info("Found %d files under %s", len(paths), o.source.Root())

	// 3. Extract, chunk and store each file
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if o.skipExisting {
			exists, err := o.chunks.Exists(ctx, domain.FileID(path))
			if err == nil && exists {
				stats.SkippedExisting++
				logger.Debug("Skipping %s: chunk set exists", path)
				continue
			}
		}

		count, err := o.processFile(ctx, path)
		switch {
		case errors.Is(err, domain.ErrUnsupportedFile):
			logger.Debug("No extractor for %s", path)
		case err != nil:
			stats.Errors++
			logger.Warn("Extracting %s: %v", path, err)
		default:
			stats.FilesProcessed++
			stats.ChunksCreated += count
		}

		if (i+1)%extractProgressEvery == 0 {
			logger.Info("Progress: %d/%d files", i+1, len(paths))
		}
	}

	// 4. Summarise the pass
	logger.Info("Extraction finished: %d files, %d chunks, %d skipped, %d errors",
		stats.FilesProcessed, stats.ChunksCreated, stats.SkippedExisting, stats.Errors)

	o.writeSummary(stats, started)

	return stats, nil
}

// Watch runs an initial extraction pass and then re-extracts files as
// they appear or change, until ctx is cancelled.
func (o *ExtractionOrchestrator) Watch(ctx context.Context) error {
	if _, err := o.Run(ctx); err != nil {
		return err
	}

	events, err := o.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", o.source.Root(), err)
	}

	logger.Info("Watching %s for changes", o.source.Root())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op == driven.FileOpRemove {
				continue
			}

			// A change event means any stored chunk set is stale, so the
			// skip-existing rule does not apply here.
			logger.Debug("Change detected: %s (%s)", event.Path, event.Op)
			count, err := o.processFile(ctx, event.Path)
			switch {
			case errors.Is(err, domain.ErrUnsupportedFile):
				logger.Debug("No extractor for %s", event.Path)
			case err != nil:
				logger.Warn("Extracting %s: %v", event.Path, err)
			default:
				logger.Info("Extracted %s: %d chunks", event.Path, count)
			}
		}
	}
}

// processFile extracts and chunks one file and stores the result.
// Returns the number of chunks stored.
func (o *ExtractionOrchestrator) processFile(ctx context.Context, path string) (int, error) {
	extractor, err := o.registry.For(path)
	if err != nil {
		return 0, err
	}

	doc, err := extractor.Extract(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	chunks, err := o.chunker.Chunk(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("chunk: %w", err)
	}

	set := buildChunkSet(path, doc, chunks)
	if err := o.chunks.Save(ctx, set); err != nil {
		return 0, fmt.Errorf("save chunk set: %w", err)
	}

	logger.Debug("Extracted %s: %d chunks (%s)", path, len(chunks), doc.Type)
	return len(chunks), nil
}

// buildChunkSet assembles the persisted record for one document. The
// document title and type are copied into the metadata so downstream
// stages and analysis can read them without the chunk list.
func buildChunkSet(path string, doc *domain.ExtractedDocument, chunks []domain.Chunk) *domain.ChunkSet {
	metadata := make(map[string]any, len(doc.Metadata)+2)
	for k, v := range doc.Metadata {
		metadata[k] = v
	}
	metadata["title"] = doc.Title
	metadata["doc_type"] = doc.Type.String()

	return &domain.ChunkSet{
		FilePath: path,
		FileID:   domain.FileID(path),
		Metadata: metadata,
		Chunks:   chunks,
		Stats: domain.ExtractionInfo{
			TotalChunks:    len(chunks),
			ContentLength:  len(doc.Content),
			ProcessingDate: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// extractionSummary is the per-run record written to the metadata
// directory after an extraction pass.
type extractionSummary struct {
	RunID      string                 `json:"run_id"`
	StartedAt  time.Time              `json:"started_at"`
	DurationMS int64                  `json:"duration_ms"`
	Stats      domain.ExtractionStats `json:"stats"`
}

// writeSummary records the pass in the metadata directory. Failures
// are logged and swallowed: the chunk sets are already safe on disk.
func (o *ExtractionOrchestrator) writeSummary(stats *domain.ExtractionStats, started time.Time) {
	if o.metadataDir == "" {
		return
	}

	summary := extractionSummary{
		RunID:      uuid.NewString(),
		StartedAt:  started.UTC(),
		DurationMS: time.Since(started).Milliseconds(),
		Stats:      *stats,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Warn("Encoding extraction summary: %v", err)
		return
	}

	if err := os.MkdirAll(o.metadataDir, 0o700); err != nil {
		logger.Warn("Creating metadata directory: %v", err)
		return
	}

	name := filepath.Join(o.metadataDir, fmt.Sprintf("extraction_%s.json", summary.RunID[:8]))
	if err := os.WriteFile(name, data, 0o600); err != nil {
		logger.Warn("Writing extraction summary: %v", err)
		return
	}

	logger.Debug("Extraction summary written to %s", name)
}
