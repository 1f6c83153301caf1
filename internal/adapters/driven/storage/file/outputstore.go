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

// outputSuffix names formatted output files: <file_id>_formatted.json.
const outputSuffix = "_formatted.json"

// Ensure OutputStore implements the interface.
var _ driven.OutputStore = (*OutputStore)(nil)

// OutputStore persists formatted Q&A outputs as JSON files.
type OutputStore struct {
	dir string
}

// NewOutputStore creates an output store on the given directory. The
// directory is created on first save; until then it reads as an empty
// store, so a fresh working tree needs no setup.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{dir: dir}
}

// Dir returns the directory outputs are stored in.
func (s *OutputStore) Dir() string {
	return s.dir
}

func (s *OutputStore) path(fileID string) string {
	return filepath.Join(s.dir, fileID+outputSuffix)
}

// Save writes the formatted output, overwriting any previous file.
func (s *OutputStore) Save(_ context.Context, fileID string, out *domain.FormattedOutput) error {
	if fileID == "" || out == nil {
		return fmt.Errorf("%w: output must carry a file ID", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output %s: %w", fileID, err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating formatted directory: %w", err)
	}
	if err := os.WriteFile(s.path(fileID), data, 0o600); err != nil {
		return fmt.Errorf("writing output %s: %w", fileID, err)
	}
	return nil
}

// Load reads the formatted output for a file ID.
func (s *OutputStore) Load(_ context.Context, fileID string) (*domain.FormattedOutput, error) {
	data, err := os.ReadFile(s.path(fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: output %s", domain.ErrNotFound, fileID)
		}
		return nil, fmt.Errorf("reading output %s: %w", fileID, err)
	}

	var out domain.FormattedOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding output %s: %w", fileID, err)
	}
	return &out, nil
}

// IsProcessed reports whether a usable output exists for the file ID.
// A missing, unreadable, or undecodable file reports false, as does a
// record with no pairs: those documents should be generated again.
func (s *OutputStore) IsProcessed(ctx context.Context, fileID string) bool {
	out, err := s.Load(ctx, fileID)
	if err != nil {
		return false
	}
	return out.HasPairs()
}

// List returns the file IDs of all stored outputs, sorted.
func (s *OutputStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading formatted directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, outputSuffix) {
			ids = append(ids, strings.TrimSuffix(name, outputSuffix))
		}
	}

	sort.Strings(ids)
	return ids, nil
}
