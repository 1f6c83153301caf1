package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

func testChunkSet(fileID string) *domain.ChunkSet {
	return &domain.ChunkSet{
		FilePath: "/data/writeups/box.md",
		FileID:   fileID,
		Metadata: map[string]any{
			"title":    "Box Writeup",
			"doc_type": "writeup",
		},
		Chunks: []domain.Chunk{
			{
				Text:        "first chunk text",
				ChunkID:     0,
				Title:       "Box Writeup",
				DocType:     domain.DocTypeWriteup,
				TotalChunks: 1,
			},
		},
		Stats: domain.ExtractionInfo{
			TotalChunks:    1,
			ContentLength:  16,
			ProcessingDate: "2024-06-01T12:00:00Z",
		},
	}
}

func TestChunkStore_MissingDirectoryReadsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed", "chunks")
	store := NewChunkStore(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	exists, err := store.Exists(ctx, "abc12345")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChunkStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed", "chunks")
	store := NewChunkStore(dir)

	require.NoError(t, store.Save(context.Background(), testChunkSet("abc12345")))

	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)
}

func TestChunkStore_SaveAndLoad(t *testing.T) {
	store := NewChunkStore(t.TempDir())
	ctx := context.Background()

	set := testChunkSet("abc12345")
	require.NoError(t, store.Save(ctx, set))

	loaded, err := store.Load(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, set.FilePath, loaded.FilePath)
	assert.Equal(t, set.FileID, loaded.FileID)
	require.Len(t, loaded.Chunks, 1)
	assert.Equal(t, "first chunk text", loaded.Chunks[0].Text)
	assert.Equal(t, domain.DocTypeWriteup, loaded.Chunks[0].DocType)
	assert.Equal(t, 1, loaded.Stats.TotalChunks)
}

func TestChunkStore_Save_RequiresFileID(t *testing.T) {
	store := NewChunkStore(t.TempDir())

	err := store.Save(context.Background(), &domain.ChunkSet{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChunkStore_Load_NotFound(t *testing.T) {
	store := NewChunkStore(t.TempDir())

	_, err := store.Load(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStore_Load_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewChunkStore(dir)

	path := filepath.Join(dir, "deadbeef"+chunkSuffix)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.Load(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, domain.ErrCorruptChunkSet)
}

func TestChunkStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewChunkStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testChunkSet("bbb22222")))
	require.NoError(t, store.Save(ctx, testChunkSet("aaa11111")))

	// Unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa11111", "bbb22222"}, ids)
}

func TestChunkStore_Exists(t *testing.T) {
	store := NewChunkStore(t.TempDir())
	ctx := context.Background()

	exists, err := store.Exists(ctx, "abc12345")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(ctx, testChunkSet("abc12345")))

	exists, err = store.Exists(ctx, "abc12345")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestChunkStore_Save_Overwrites(t *testing.T) {
	store := NewChunkStore(t.TempDir())
	ctx := context.Background()

	set := testChunkSet("abc12345")
	require.NoError(t, store.Save(ctx, set))

	set.Chunks[0].Text = "rewritten"
	require.NoError(t, store.Save(ctx, set))

	loaded, err := store.Load(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", loaded.Chunks[0].Text)
}
