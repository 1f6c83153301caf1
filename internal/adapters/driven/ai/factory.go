// Package ai provides factory functions for creating generation backends.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamallm "github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/llm/openai"
	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: llm settings missing", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.ProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.ProviderOpenAI:
		return createOpenAILLM(settings)

	default:
		return nil, fmt.Errorf("%w: unsupported llm provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance. A run calls
// this once before committing to any chunk work.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %w. %s", domain.ErrBackendUnavailable, err, guidance(settings.Provider))
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and
// pinging it. Intended for 'qaforge config' and doctor checks.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w. %s", domain.ErrBackendUnavailable, err, guidance(settings.Provider))
	}
	return nil
}

// guidance returns a remediation hint for an unreachable provider.
func guidance(provider domain.Provider) string {
	switch provider {
	case domain.ProviderOllama:
		return "Is Ollama running? Start it with 'ollama serve'"
	case domain.ProviderOpenAI:
		return "Check llm.base_url and llm.api_key with 'qaforge config show'"
	default:
		return "Check the llm section with 'qaforge config show'"
	}
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout(),
	})
}

// createOpenAILLM creates an OpenAI-compatible LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout(),
	})
}
