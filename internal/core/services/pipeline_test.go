package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/storage/memory"
	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// --- Mock implementations for pipeline testing ---
// Note: These are prefixed with "batch" to avoid conflicts with the
// generator and prompt test mocks.

// batchLLM implements driven.LLMService with a constant response. Safe
// for concurrent use so worker-pool tests can share one instance.
type batchLLM struct {
	mu            sync.Mutex
	response      string
	failSubstring string
	pingErr       error
	calls         int
}

func (f *batchLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failSubstring != "" && strings.Contains(prompt, f.failSubstring) {
		return "", errors.New("backend exploded")
	}
	return f.response, nil
}

func (f *batchLLM) ListModels(_ context.Context) ([]string, error) {
	return []string{"test-model"}, nil
}

func (f *batchLLM) ModelName() string { return "test-model" }

func (f *batchLLM) Ping(_ context.Context) error { return f.pingErr }

func (f *batchLLM) Close() error { return nil }

func (f *batchLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// staticPromptStore implements driven.PromptStore without recording
// state, so concurrent pipeline tests stay race-free.
type staticPromptStore struct{}

func (staticPromptStore) Load(_ string) (string, error) {
	return "type=%s title=%s\n%s", nil
}

func (staticPromptStore) Reload() {}

// corruptChunkStore serves one chunk set as undecodable.
type corruptChunkStore struct {
	*memory.ChunkStore
	corruptID string
}

func (s *corruptChunkStore) Load(ctx context.Context, fileID string) (*domain.ChunkSet, error) {
	if fileID == s.corruptID {
		return nil, fmt.Errorf("%w: %s", domain.ErrCorruptChunkSet, fileID)
	}
	return s.ChunkStore.Load(ctx, fileID)
}

// goodResponse parses into one pair that passes the default gate.
const goodResponse = "Q: What is the main exploitation technique described?\n" +
	"A: The walkthrough abuses an unsanitised SQL parameter to dump credentials from the backing database."

// longChunk comfortably clears the minimum chunk length.
const longChunk = "This section walks through exploiting the injection point in detail, step by step."

func testChunkSet(fileID, path string, texts ...string) *domain.ChunkSet {
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			Text:        text,
			ChunkID:     i,
			Title:       "Test Doc",
			DocType:     domain.DocTypeWriteup,
			TotalChunks: len(texts),
		}
	}
	return &domain.ChunkSet{
		FilePath: path,
		FileID:   fileID,
		Metadata: map[string]any{"doc_type": "writeup", "title": "Test Doc"},
		Chunks:   chunks,
	}
}

func newTestPipeline(llm driven.LLMService, chunks driven.ChunkStore, outputs driven.OutputStore) *Pipeline {
	return NewPipeline(
		chunks,
		outputs,
		NewGenerator(llm, fastLLMSettings()),
		NewResponseParser(),
		NewQualityGate(domain.DefaultSettings().Quality),
		NewPromptBuilder(staticPromptStore{}),
		domain.DefaultSettings().Generation,
	)
}

func TestPipeline_ProcessesPendingDocuments(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk)))
	require.NoError(t, chunks.Save(ctx, testChunkSet("bbb22222", "data/second.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Found)
	assert.Equal(t, 0, stats.AlreadyProcessed)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 2, stats.TotalPairs)

	out, err := outputs.Load(ctx, "aaa11111")
	require.NoError(t, err)
	assert.Equal(t, "data/first.md", out.SourceFile)
	require.Len(t, out.QAPairs, 1)
	assert.Equal(t, "What is the main exploitation technique described?", out.QAPairs[0].Question)
	assert.Equal(t, 1, out.Stats.QAPairsGenerated)
	assert.Equal(t, 1, out.Stats.ChunksProcessed)
}

func TestPipeline_SecondRunSkipsEverything(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk)))
	require.NoError(t, chunks.Save(ctx, testChunkSet("bbb22222", "data/second.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)

	_, err := pipeline.Run(ctx)
	require.NoError(t, err)
	callsAfterFirst := llm.callCount()

	stats, err := pipeline.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.AlreadyProcessed)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, callsAfterFirst, llm.callCount(), "second run must not call the backend")
}

func TestPipeline_PreflightAbort(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse, pingErr: errors.New("connection refused")}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Nil(t, stats)
	assert.Equal(t, 0, llm.callCount(), "no work may start when the backend is down")
}

func TestPipeline_SkipsShortChunks(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", "tiny", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, llm.callCount(), "short chunk must not reach the backend")
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.TotalPairs)
}

func TestPipeline_FailedDocumentDoesNotStopRun(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse, failSubstring: "FAILDOC"}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	failing := "FAILDOC this chunk is long enough to be sent to the backend for processing."
	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/broken.md", failing)))
	require.NoError(t, chunks.Save(ctx, testChunkSet("bbb22222", "data/fine.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err, "partial failure is not a run failure")
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Failed)
	assert.False(t, outputs.IsProcessed(ctx, "aaa11111"))
	assert.True(t, outputs.IsProcessed(ctx, "bbb22222"))
}

func TestPipeline_ChunkFailureDoesNotFailDocument(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse, failSubstring: "FAILCHUNK"}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	failing := "FAILCHUNK this chunk is long enough to be sent to the backend for processing."
	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk, failing, longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Failed)

	out, err := outputs.Load(ctx, "aaa11111")
	require.NoError(t, err)
	assert.Len(t, out.QAPairs, 2, "pairs from the surviving chunks must still be written")
}

func TestPipeline_TotalFailureReturnsError(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse, failSubstring: "FAILDOC"}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	failing := "FAILDOC this chunk is long enough to be sent to the backend for processing."
	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/broken.md", failing)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.Error(t, err)
	require.NotNil(t, stats)
	assert.True(t, stats.TotalFailure())
}

func TestPipeline_QualityGateFiltersPairs(t *testing.T) {
	ctx := context.Background()
	mixed := goodResponse + "\nQ: Bad?\nA: Too short."
	llm := &batchLLM{response: mixed}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPairs)
	assert.Equal(t, 1, stats.QualityFiltered)
}

func TestPipeline_CorruptChunkSetCountsAsFailed(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	backing := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, backing.Save(ctx, testChunkSet("aaa11111", "data/broken.md", longChunk)))
	require.NoError(t, backing.Save(ctx, testChunkSet("bbb22222", "data/fine.md", longChunk)))

	chunks := &corruptChunkStore{ChunkStore: backing, corruptID: "aaa11111"}

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Processed)
	assert.True(t, outputs.IsProcessed(ctx, "bbb22222"))
}

func TestPipeline_BuffersPairsAcrossChunks(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk, longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, llm.callCount())
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 2, stats.TotalPairs)

	out, err := outputs.Load(ctx, "aaa11111")
	require.NoError(t, err)
	assert.Len(t, out.QAPairs, 2)
	assert.Equal(t, 2, out.Stats.ChunksProcessed)
}

func TestPipeline_ConcurrentWorkers(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("doc%05d", i)
		require.NoError(t, chunks.Save(ctx, testChunkSet(id, "data/"+id+".md", longChunk)))
	}

	cfg := domain.DefaultSettings().Generation
	cfg.Workers = 3
	pipeline := NewPipeline(
		chunks,
		outputs,
		NewGenerator(llm, fastLLMSettings()),
		NewResponseParser(),
		NewQualityGate(domain.DefaultSettings().Quality),
		NewPromptBuilder(staticPromptStore{}),
		cfg,
	)

	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 6, stats.Processed)
	assert.Equal(t, 6, stats.TotalPairs)
	assert.Equal(t, 0, stats.Failed)
}

func TestPipeline_EmptyStore(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}

	pipeline := newTestPipeline(llm, memory.NewChunkStore(), memory.NewOutputStore())
	stats, err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Found)
	assert.Equal(t, 0, llm.callCount())
}

func TestPipeline_Status(t *testing.T) {
	ctx := context.Background()
	llm := &batchLLM{response: goodResponse}
	chunks := memory.NewChunkStore()
	outputs := memory.NewOutputStore()

	require.NoError(t, chunks.Save(ctx, testChunkSet("aaa11111", "data/first.md", longChunk)))

	pipeline := newTestPipeline(llm, chunks, outputs)

	status := pipeline.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 0, status.DocumentsProcessed)

	_, err := pipeline.Run(ctx)
	require.NoError(t, err)

	status = pipeline.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.DocumentsProcessed)
	assert.Equal(t, 1, status.PairsGenerated)
	assert.Equal(t, 0, status.ErrorCount)
}
