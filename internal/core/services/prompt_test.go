package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// fakePromptStore implements driven.PromptStore with canned templates.
type fakePromptStore struct {
	loaded  []string
	loadErr error
}

func (f *fakePromptStore) Load(name string) (string, error) {
	f.loaded = append(f.loaded, name)
	if f.loadErr != nil {
		return "", f.loadErr
	}
	return fmt.Sprintf("[%s] type=%%s title=%%s content=%%s", name), nil
}

func (f *fakePromptStore) Reload() {}

func TestPromptBuilder_FillsPlaceholders(t *testing.T) {
	store := &fakePromptStore{}
	builder := NewPromptBuilder(store)

	prompt, err := builder.Build(domain.Chunk{
		Text:    "chunk body",
		Title:   "HTB Writeup",
		DocType: domain.DocTypeWriteup,
	})

	require.NoError(t, err)
	assert.Equal(t, "[qa_writeup] type=writeup title=HTB Writeup content=chunk body", prompt)
}

func TestPromptBuilder_TemplateSelection(t *testing.T) {
	tests := []struct {
		docType domain.DocType
		want    string
	}{
		{domain.DocTypeWriteup, driven.PromptQAWriteup},
		{domain.DocTypeChallenge, driven.PromptQAChallenge},
		{domain.DocTypeCode, driven.PromptQACode},
		{domain.DocTypeResearchPaper, driven.PromptQAResearch},
		{domain.DocTypeDocumentation, driven.PromptQAGeneral},
		{domain.DocTypeReference, driven.PromptQAGeneral},
		{domain.DocTypeLog, driven.PromptQAGeneral},
		{domain.DocTypeImage, driven.PromptQAGeneral},
		{domain.DocTypeText, driven.PromptQAGeneral},
		{domain.DocTypeDocument, driven.PromptQAGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.docType.String(), func(t *testing.T) {
			store := &fakePromptStore{}
			builder := NewPromptBuilder(store)

			_, err := builder.Build(domain.Chunk{Text: "x", DocType: tt.docType})

			require.NoError(t, err)
			require.Len(t, store.loaded, 1)
			assert.Equal(t, tt.want, store.loaded[0])
		})
	}
}

func TestPromptBuilder_Fallbacks(t *testing.T) {
	store := &fakePromptStore{}
	builder := NewPromptBuilder(store)

	prompt, err := builder.Build(domain.Chunk{Text: "orphan chunk"})

	require.NoError(t, err)
	assert.Contains(t, prompt, "type=document")
	assert.Contains(t, prompt, "title=Unknown")
}

func TestPromptBuilder_LoadError(t *testing.T) {
	store := &fakePromptStore{loadErr: errors.New("store broken")}
	builder := NewPromptBuilder(store)

	_, err := builder.Build(domain.Chunk{Text: "x", DocType: domain.DocTypeCode})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load prompt")
}
