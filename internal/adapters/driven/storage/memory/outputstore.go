package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure OutputStore implements the interface.
var _ driven.OutputStore = (*OutputStore)(nil)

// OutputStore is an in-memory implementation of driven.OutputStore.
type OutputStore struct {
	mu      sync.RWMutex
	outputs map[string]domain.FormattedOutput
}

// NewOutputStore creates a new in-memory output store.
func NewOutputStore() *OutputStore {
	return &OutputStore{
		outputs: make(map[string]domain.FormattedOutput),
	}
}

// Save stores a formatted output, overwriting any previous record.
func (s *OutputStore) Save(_ context.Context, fileID string, out *domain.FormattedOutput) error {
	if fileID == "" || out == nil {
		return fmt.Errorf("%w: output must carry a file ID", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[fileID] = *out
	return nil
}

// Load retrieves the formatted output for a file ID.
func (s *OutputStore) Load(_ context.Context, fileID string) (*domain.FormattedOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.outputs[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: output %s", domain.ErrNotFound, fileID)
	}
	return &out, nil
}

// IsProcessed reports whether a usable output exists for the file ID.
func (s *OutputStore) IsProcessed(_ context.Context, fileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.outputs[fileID]
	if !ok {
		return false
	}
	return out.HasPairs()
}

// List returns the file IDs of all stored outputs, sorted.
func (s *OutputStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.outputs))
	for id := range s.outputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
