package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// chunkSuffix names chunk-set files: <file_id>_chunks.json.
const chunkSuffix = "_chunks.json"

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore persists chunk sets as JSON files in a flat directory.
type ChunkStore struct {
	dir string
}

// NewChunkStore creates a chunk store on the given directory. The
// directory is created on first save; until then it reads as an empty
// store, so a fresh working tree needs no setup.
func NewChunkStore(dir string) *ChunkStore {
	return &ChunkStore{dir: dir}
}

// Dir returns the directory chunk sets are stored in.
func (s *ChunkStore) Dir() string {
	return s.dir
}

func (s *ChunkStore) path(fileID string) string {
	return filepath.Join(s.dir, fileID+chunkSuffix)
}

// Save writes the chunk set, overwriting any previous file.
func (s *ChunkStore) Save(_ context.Context, set *domain.ChunkSet) error {
	if set == nil || set.FileID == "" {
		return fmt.Errorf("%w: chunk set must carry a file ID", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chunk set %s: %w", set.FileID, err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating chunks directory: %w", err)
	}
	if err := os.WriteFile(s.path(set.FileID), data, 0o600); err != nil {
		return fmt.Errorf("writing chunk set %s: %w", set.FileID, err)
	}
	return nil
}

// Load reads the chunk set for a file ID.
func (s *ChunkStore) Load(_ context.Context, fileID string) (*domain.ChunkSet, error) {
	data, err := os.ReadFile(s.path(fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: chunk set %s", domain.ErrNotFound, fileID)
		}
		return nil, fmt.Errorf("reading chunk set %s: %w", fileID, err)
	}

	var set domain.ChunkSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptChunkSet, fileID, err)
	}
	return &set, nil
}

// List returns the file IDs of all stored chunk sets, sorted.
func (s *ChunkStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading chunks directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, chunkSuffix) {
			ids = append(ids, strings.TrimSuffix(name, chunkSuffix))
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether a chunk set is stored for the file ID.
func (s *ChunkStore) Exists(_ context.Context, fileID string) (bool, error) {
	_, err := os.Stat(s.path(fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking chunk set %s: %w", fileID, err)
	}
	return true, nil
}
