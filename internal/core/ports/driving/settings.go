package driving

import "github.com/qaforge-labs/qaforge-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Validate checks if current settings are internally consistent.
	Validate() error

	// ValidateLLMConfig validates the current LLM configuration by pinging the backend.
	ValidateLLMConfig() error

	// Path returns the location of the settings file.
	Path() string
}
