package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateLLM(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigValidator_ValidateLLM_UnknownProvider(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.LLMSettings{
		Provider: "mystery",
		Model:    "test-model",
	}

	err := validator.ValidateLLM(config)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigValidator_ValidateLLM_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	validator := NewConfigValidator()
	config := &domain.LLMSettings{
		Provider: domain.ProviderOllama,
		BaseURL:  server.URL,
		Model:    "test-model",
	}

	assert.NoError(t, validator.ValidateLLM(config))
}

func TestConfigValidator_ValidateLLM_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	validator := NewConfigValidator()
	config := &domain.LLMSettings{
		Provider: domain.ProviderOllama,
		BaseURL:  server.URL,
		Model:    "test-model",
	}

	assert.ErrorIs(t, validator.ValidateLLM(config), domain.ErrBackendUnavailable)
}
