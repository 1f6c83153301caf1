package extractors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches files to the highest-priority extractor that
// claims them.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor. Extractors are kept sorted by descending
// priority so For can return the first match.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, e)
	sort.SliceStable(r.extractors, func(i, j int) bool {
		return r.extractors[i].Priority() > r.extractors[j].Priority()
	})
}

// For returns the extractor responsible for the given path.
// Returns domain.ErrUnsupportedFile when no registered extractor claims it.
func (r *Registry) For(path string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.extractors {
		if e.Supports(path) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, path)
}
