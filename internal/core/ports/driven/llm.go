// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is the text-generation backend invoked once per chunk.
// Implementations are single-attempt: retry policy belongs to the
// generation service in core, not to the adapter.
//
// Implementations may include:
//   - Ollama (local models)
//   - Any OpenAI-compatible endpoint (LM Studio, vLLM, llama.cpp)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ListModels returns the model identifiers available on the backend.
	ListModels(ctx context.Context) ([]string, error)

	// ModelName returns the model identifier sent with every request.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight request.
	// Checked once before a run commits to any work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero leaves the backend default in place.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// TopP is the nucleus sampling parameter.
	TopP float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
