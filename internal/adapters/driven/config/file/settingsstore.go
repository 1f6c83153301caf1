package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// DefaultFileName is the settings file looked up in the working directory
// when no --config flag is given. The tool is project-local: settings live
// next to the data they describe, not under the home directory.
const DefaultFileName = "qaforge.toml"

// SettingsStore is a file-based implementation of driven.SettingsStore
// using TOML.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a TOML-based settings store.
// If path is empty, defaults to qaforge.toml in the working directory.
// The constructor performs no I/O.
func NewSettingsStore(path string) *SettingsStore {
	if path == "" {
		path = DefaultFileName
	}
	return &SettingsStore{filePath: path}
}

// Load reads settings from the TOML file. A missing file returns the
// defaults unchanged. Keys absent from the file keep their default value,
// so a minimal file overriding one setting is valid.
func (s *SettingsStore) Load() (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.filePath, err)
	}

	return settings, nil
}

// Save persists settings to the TOML file, creating parent directories as
// needed. The write goes through a temporary file in the same directory so
// a crash mid-write never leaves a half-written settings file behind.
func (s *SettingsStore) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings must not be nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".qaforge-settings-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
