package pdf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupports(t *testing.T) {
	extractor := New()

	assert.True(t, extractor.Supports("/data/report.pdf"))
	assert.True(t, extractor.Supports("/data/REPORT.PDF"))
	assert.False(t, extractor.Supports("/data/report.md"))
	assert.False(t, extractor.Supports("/data/report"))
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New()

	doc, err := extractor.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected domain.DocType
	}{
		{
			name:     "writeup keyword",
			path:     "/data/writeups/htb-machine.pdf",
			expected: domain.DocTypeWriteup,
		},
		{
			name:     "solution keyword",
			path:     "/data/solutions/final.pdf",
			expected: domain.DocTypeWriteup,
		},
		{
			name:     "research keyword",
			path:     "/data/research/fuzzing.pdf",
			expected: domain.DocTypeResearchPaper,
		},
		{
			name:     "paper keyword in filename",
			path:     "/data/misc/paper-v2.pdf",
			expected: domain.DocTypeResearchPaper,
		},
		{
			name:     "ctf keyword",
			path:     "/data/ctf-2024/pwn.pdf",
			expected: domain.DocTypeChallenge,
		},
		{
			name:     "no keyword",
			path:     "/data/misc/slides.pdf",
			expected: domain.DocTypeDocument,
		},
		{
			name:     "keyword in directory not filename",
			path:     "/data/walkthrough/notes.pdf",
			expected: domain.DocTypeWriteup,
		},
		{
			name:     "writeup beats challenge",
			path:     "/data/ctf/writeup.pdf",
			expected: domain.DocTypeWriteup,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classify(tc.path))
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
