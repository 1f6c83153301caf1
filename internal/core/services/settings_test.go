package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// settingsMockStore implements driven.SettingsStore in memory.
type settingsMockStore struct {
	settings *domain.Settings
	loadErr  error
	saveErr  error
	saved    *domain.Settings
}

func (m *settingsMockStore) Load() (*domain.Settings, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return m.settings, nil
}

func (m *settingsMockStore) Save(settings *domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = settings
	return nil
}

func (m *settingsMockStore) Path() string { return "qaforge.toml" }

// settingsMockValidator implements driven.AIConfigValidator.
type settingsMockValidator struct {
	validateErr error
	validated   *domain.LLMSettings
}

func (m *settingsMockValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.validated = config
	return m.validateErr
}

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Equal(t, defaults.Chunking.MaxWords, settings.Chunking.MaxWords)
	assert.Equal(t, defaults.Paths.DataDir, settings.Paths.DataDir)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	stored := domain.DefaultSettings()
	stored.LLM.Model = "llama3.2"
	stored.Chunking.MaxWords = 2000

	service := NewSettingsService(&settingsMockStore{settings: stored}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, 2000, settings.Chunking.MaxWords)
}

func TestSettingsService_Save(t *testing.T) {
	store := &settingsMockStore{}
	service := NewSettingsService(store, nil)

	settings := domain.DefaultSettings()
	settings.Generation.Workers = 4

	err := service.Save(settings)

	require.NoError(t, err)
	require.NotNil(t, store.saved)
	assert.Equal(t, 4, store.saved.Generation.Workers)
}

func TestSettingsService_Save_RejectsNil(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)

	err := service.Save(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	store := &settingsMockStore{}
	service := NewSettingsService(store, nil)

	settings := domain.DefaultSettings()
	settings.Chunking.OverlapWords = settings.Chunking.MaxWords

	err := service.Save(settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, store.saved, "invalid settings must not reach the store")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)

	defaults := service.GetDefaults()

	assert.Equal(t, domain.ProviderOllama, defaults.LLM.Provider)
	assert.Equal(t, 4000, defaults.Chunking.MaxWords)
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)
	assert.NoError(t, service.Validate())

	broken := domain.DefaultSettings()
	broken.Generation.Workers = 0
	service = NewSettingsService(&settingsMockStore{settings: broken}, nil)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_ValidateLLMConfig_NoValidator(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)

	assert.NoError(t, service.ValidateLLMConfig())
}

func TestSettingsService_ValidateLLMConfig_CallsValidator(t *testing.T) {
	validator := &settingsMockValidator{}
	service := NewSettingsService(&settingsMockStore{}, validator)

	err := service.ValidateLLMConfig()

	require.NoError(t, err)
	require.NotNil(t, validator.validated)
	assert.Equal(t, domain.ProviderOllama, validator.validated.Provider)
}

func TestSettingsService_ValidateLLMConfig_PropagatesFailure(t *testing.T) {
	validator := &settingsMockValidator{validateErr: errors.New("backend down")}
	service := NewSettingsService(&settingsMockStore{}, validator)

	err := service.ValidateLLMConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestSettingsService_Path(t *testing.T) {
	service := NewSettingsService(&settingsMockStore{}, nil)

	assert.Equal(t, "qaforge.toml", service.Path())
}
