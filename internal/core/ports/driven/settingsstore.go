package driven

import "github.com/qaforge-labs/qaforge-cli/internal/core/domain"

// SettingsStore provides access to application settings.
// Implementations handle persistence (e.g., TOML files) and defaulting.
type SettingsStore interface {
	// Load reads settings from storage. A missing file is not an error:
	// defaults are returned so a fresh checkout works without setup.
	Load() (*domain.Settings, error)

	// Save persists settings to storage, creating parent directories
	// as needed.
	Save(settings *domain.Settings) error

	// Path returns the settings file path.
	Path() string
}
