// Package chunker provides a fixed-size word-window chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// DefaultMaxWords is the default number of words per chunk.
const DefaultMaxWords = 4000

// DefaultOverlapWords is the default number of overlapping words.
const DefaultOverlapWords = 200

// Processor splits document content into overlapping word windows.
// It implements the Chunker interface.
type Processor struct {
	maxWords int
	overlap  int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxWords sets the window size in words.
func WithMaxWords(size int) Option {
	return func(p *Processor) {
		p.maxWords = size
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// An overlap equal to or larger than the window size is rejected here
// rather than clamped: silently shrinking either value would change
// chunk boundaries without the operator noticing.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		maxWords: DefaultMaxWords,
		overlap:  DefaultOverlapWords,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.maxWords <= 0 {
		return nil, fmt.Errorf("%w: max words must be positive, got %d", domain.ErrInvalidInput, p.maxWords)
	}
	if p.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidInput, p.overlap)
	}
	if p.overlap >= p.maxWords {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than max words %d", domain.ErrInvalidInput, p.overlap, p.maxWords)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Chunk splits the document content into word windows.
// A document that fits a single window is returned whole, original
// whitespace intact. Larger documents are windowed with a stride of
// maxWords - overlap; the final window is clipped to the end of the
// word sequence and iteration stops there, so consecutive chunks
// always share exactly the configured overlap.
func (p *Processor) Chunk(ctx context.Context, doc *domain.ExtractedDocument) ([]domain.Chunk, error) {
	words := strings.Fields(doc.Content)

	if len(words) <= p.maxWords {
		return []domain.Chunk{{
			Text:        doc.Content,
			ChunkID:     0,
			Title:       doc.Title,
			DocType:     doc.Type,
			TotalChunks: 1,
		}}, nil
	}

	stride := p.maxWords - p.overlap
	estimated := (len(words) - p.overlap + stride - 1) / stride
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; ; start += stride {
		end := start + p.maxWords
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			Text:         strings.Join(words[start:end], " "),
			ChunkID:      len(chunks),
			Title:        doc.Title,
			DocType:      doc.Type,
			OverlapStart: start > 0,
			OverlapEnd:   end < len(words),
		})

		if end == len(words) {
			break
		}
	}

	// Total is unknown until windowing completes
	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}

	return chunks, nil
}
