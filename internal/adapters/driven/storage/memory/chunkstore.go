// Package memory provides in-memory storage implementations, used by
// tests and available wherever persistence is not required.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu   sync.RWMutex
	sets map[string]domain.ChunkSet
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		sets: make(map[string]domain.ChunkSet),
	}
}

// Save stores a chunk set, overwriting any previous record.
func (s *ChunkStore) Save(_ context.Context, set *domain.ChunkSet) error {
	if set == nil || set.FileID == "" {
		return fmt.Errorf("%w: chunk set must carry a file ID", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.FileID] = *set
	return nil
}

// Load retrieves the chunk set for a file ID.
func (s *ChunkStore) Load(_ context.Context, fileID string) (*domain.ChunkSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: chunk set %s", domain.ErrNotFound, fileID)
	}
	return &set, nil
}

// List returns the file IDs of all stored chunk sets, sorted.
func (s *ChunkStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sets))
	for id := range s.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether a chunk set is stored for the file ID.
func (s *ChunkStore) Exists(_ context.Context, fileID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[fileID]
	return ok, nil
}
