package services

import (
	"fmt"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// PromptBuilder renders the generation prompt for a chunk, selecting a
// template by document type and filling in the chunk's context.
type PromptBuilder struct {
	prompts driven.PromptStore
}

// NewPromptBuilder creates a prompt builder backed by the given store.
func NewPromptBuilder(prompts driven.PromptStore) *PromptBuilder {
	return &PromptBuilder{prompts: prompts}
}

// Build renders the prompt for one chunk. Chunks written by older tool
// versions may lack a title or document type; both fall back to neutral
// values rather than leaking empty placeholders into the prompt.
func (b *PromptBuilder) Build(chunk domain.Chunk) (string, error) {
	docType := chunk.DocType
	if docType == "" {
		docType = domain.DocTypeDocument
	}

	title := chunk.Title
	if title == "" {
		title = "Unknown"
	}

	template, err := b.prompts.Load(promptName(docType))
	if err != nil {
		return "", fmt.Errorf("load prompt: %w", err)
	}

	return fmt.Sprintf(template, docType, title, chunk.Text), nil
}

// promptName maps a document type onto its template. Types without a
// dedicated template use the general one.
func promptName(t domain.DocType) string {
	switch t {
	case domain.DocTypeWriteup:
		return driven.PromptQAWriteup
	case domain.DocTypeChallenge:
		return driven.PromptQAChallenge
	case domain.DocTypeCode:
		return driven.PromptQACode
	case domain.DocTypeResearchPaper:
		return driven.PromptQAResearch
	default:
		return driven.PromptQAGeneral
	}
}
