package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Provider identifies a text-generation backend provider.
type Provider string

// Available providers.
const (
	// ProviderOllama is a local Ollama instance.
	ProviderOllama Provider = "ollama"

	// ProviderOpenAI is any OpenAI-compatible endpoint, including
	// local servers such as LM Studio, vLLM or llama.cpp.
	ProviderOpenAI Provider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p Provider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p Provider) Description() string {
	switch p {
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI-compatible endpoint"
	default:
		return unknownDescription
	}
}

// PathSettings holds the working-directory-relative data locations.
type PathSettings struct {
	// DataDir is the input tree of source documents.
	DataDir string `toml:"data_dir"`

	// ChunksDir receives one chunk-set file per document.
	ChunksDir string `toml:"chunks_dir"`

	// FormattedDir receives one formatted output file per document.
	FormattedDir string `toml:"formatted_dir"`

	// MetadataDir receives run logs and extraction summaries.
	MetadataDir string `toml:"metadata_dir"`
}

// ChunkingSettings holds the word-window parameters.
type ChunkingSettings struct {
	// MaxWords is the window size in words.
	MaxWords int `toml:"max_words"`

	// OverlapWords is the number of words shared between consecutive
	// windows. Must be smaller than MaxWords.
	OverlapWords int `toml:"overlap_words"`
}

// ExtractionSettings holds extraction-stage behaviour.
type ExtractionSettings struct {
	// EnableOCR controls whether image files are OCR'd.
	EnableOCR bool `toml:"enable_ocr"`

	// EnableCode controls whether source code files are extracted.
	EnableCode bool `toml:"enable_code"`

	// SkipExisting skips files whose chunk set already exists.
	SkipExisting bool `toml:"skip_existing"`
}

// LLMSettings holds generation backend configuration.
type LLMSettings struct {
	// Provider selects the backend adapter.
	Provider Provider `toml:"provider"`

	// Model is the model identifier sent with every request.
	Model string `toml:"model"`

	// BaseURL is the backend endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates OpenAI-compatible endpoints. Unused for Ollama.
	APIKey string `toml:"api_key"`

	// TimeoutSeconds bounds a single generation call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxRetries is the attempt budget per chunk.
	MaxRetries int `toml:"max_retries"`

	// RetryDelaySeconds is the fixed pause between attempts.
	RetryDelaySeconds int `toml:"retry_delay_seconds"`

	// Temperature is the sampling temperature.
	Temperature float64 `toml:"temperature"`

	// TopP is the nucleus sampling parameter.
	TopP float64 `toml:"top_p"`

	// MaxTokens caps the response length. Zero leaves the backend default.
	MaxTokens int `toml:"max_tokens"`

	// RequestsPerMinute throttles calls across the run. Zero disables.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// Timeout returns the per-call timeout as a duration.
func (l LLMSettings) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// RetryDelay returns the inter-attempt pause as a duration.
func (l LLMSettings) RetryDelay() time.Duration {
	return time.Duration(l.RetryDelaySeconds) * time.Second
}

// GenerationSettings holds batch-coordinator behaviour.
type GenerationSettings struct {
	// MinChunkChars is the threshold below which a chunk is skipped
	// outright rather than sent to the backend.
	MinChunkChars int `toml:"min_chunk_chars"`

	// Workers bounds document-level parallelism. One means sequential.
	Workers int `toml:"workers"`

	// ProgressInterval is the document cadence for progress logging.
	ProgressInterval int `toml:"progress_interval"`
}

// QualitySettings holds the quality gate thresholds.
type QualitySettings struct {
	// MinQuestionChars rejects questions shorter than this.
	MinQuestionChars int `toml:"min_question_chars"`

	// MinAnswerChars rejects answers shorter than this.
	MinAnswerChars int `toml:"min_answer_chars"`

	// MinAnswerWords rejects answers with fewer words than this.
	MinAnswerWords int `toml:"min_answer_words"`

	// MinDistinctRatio rejects answers whose distinct-to-total word
	// ratio falls below this.
	MinDistinctRatio float64 `toml:"min_distinct_ratio"`
}

// PromptSettings holds prompt template configuration.
type PromptSettings struct {
	// Dir is an optional directory of user-editable template files.
	// Empty means embedded defaults only, with no disk writes.
	Dir string `toml:"dir"`
}

// Settings is the complete application configuration.
type Settings struct {
	Paths      PathSettings       `toml:"paths"`
	Chunking   ChunkingSettings   `toml:"chunking"`
	Extraction ExtractionSettings `toml:"extraction"`
	LLM        LLMSettings        `toml:"llm"`
	Generation GenerationSettings `toml:"generation"`
	Quality    QualitySettings    `toml:"quality"`
	Prompts    PromptSettings     `toml:"prompts"`
}

// DefaultSettings returns settings reproducing the tool's stock
// behaviour: Ollama on localhost, 4000-word windows with 200 overlap,
// three attempts two seconds apart, sequential processing.
func DefaultSettings() *Settings {
	return &Settings{
		Paths: PathSettings{
			DataDir:      "data",
			ChunksDir:    "processed/chunks",
			FormattedDir: "processed/formatted",
			MetadataDir:  "processed/metadata",
		},
		Chunking: ChunkingSettings{
			MaxWords:     4000,
			OverlapWords: 200,
		},
		Extraction: ExtractionSettings{
			EnableOCR:    true,
			EnableCode:   true,
			SkipExisting: true,
		},
		LLM: LLMSettings{
			Provider:          ProviderOllama,
			Model:             "deepseek-r1:32b",
			BaseURL:           "http://localhost:11434",
			TimeoutSeconds:    120,
			MaxRetries:        3,
			RetryDelaySeconds: 2,
			Temperature:       0.3,
			TopP:              0.9,
		},
		Generation: GenerationSettings{
			MinChunkChars:    50,
			Workers:          1,
			ProgressInterval: 10,
		},
		Quality: QualitySettings{
			MinQuestionChars: 15,
			MinAnswerChars:   30,
			MinAnswerWords:   8,
			MinDistinctRatio: 0.3,
		},
	}
}

// Validate checks the settings for configuration errors.
// Chunking bounds fail here rather than mid-run: an overlap at or above
// the window size would never advance.
func (s *Settings) Validate() error {
	if s.Chunking.MaxWords <= 0 {
		return fmt.Errorf("%w: chunking.max_words must be positive, got %d",
			ErrInvalidInput, s.Chunking.MaxWords)
	}
	if s.Chunking.OverlapWords < 0 {
		return fmt.Errorf("%w: chunking.overlap_words must not be negative, got %d",
			ErrInvalidInput, s.Chunking.OverlapWords)
	}
	if s.Chunking.OverlapWords >= s.Chunking.MaxWords {
		return fmt.Errorf("%w: chunking.overlap_words (%d) must be smaller than max_words (%d)",
			ErrInvalidInput, s.Chunking.OverlapWords, s.Chunking.MaxWords)
	}
	if !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown llm.provider %q", ErrInvalidInput, s.LLM.Provider)
	}
	if s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "" {
		return fmt.Errorf("%w: llm.provider %q requires llm.api_key",
			ErrInvalidInput, s.LLM.Provider)
	}
	if s.LLM.Model == "" {
		return fmt.Errorf("%w: llm.model must be set", ErrInvalidInput)
	}
	if s.LLM.MaxRetries < 1 {
		return fmt.Errorf("%w: llm.max_retries must be at least 1, got %d",
			ErrInvalidInput, s.LLM.MaxRetries)
	}
	if s.Generation.Workers < 1 {
		return fmt.Errorf("%w: generation.workers must be at least 1, got %d",
			ErrInvalidInput, s.Generation.Workers)
	}
	if s.Quality.MinDistinctRatio < 0 || s.Quality.MinDistinctRatio > 1 {
		return fmt.Errorf("%w: quality.min_distinct_ratio must be within [0, 1], got %g",
			ErrInvalidInput, s.Quality.MinDistinctRatio)
	}
	return nil
}
