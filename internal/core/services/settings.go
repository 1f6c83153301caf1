package services

import (
	"fmt"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	store       driven.SettingsStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// The aiValidator is optional; when nil, backend connectivity checks
// are skipped.
func NewSettingsService(store driven.SettingsStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		store:       store,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Values absent from the
// settings file come back as defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	return s.store.Load()
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings must not be nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.store.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return *domain.DefaultSettings()
}

// Validate checks if current settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// ValidateLLMConfig validates the current LLM configuration by pinging
// the backend.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Path returns the settings file location, for display in config
// output and doctor reports.
func (s *SettingsService) Path() string {
	return s.store.Path()
}
