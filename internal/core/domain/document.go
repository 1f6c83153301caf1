package domain

import (
	"crypto/md5" //nolint:gosec // Not used for security; stable file identity only.
	"encoding/hex"
)

// FileIDLength is the number of hex characters kept from the path digest.
const FileIDLength = 8

// FileID derives the stable document identifier for a source path.
// It is the first 8 hex characters of the MD5 digest of the path and is
// the join key between a chunk-set file and its formatted output.
func FileID(path string) string {
	sum := md5.Sum([]byte(path)) //nolint:gosec // Identity hash, not cryptographic.
	return hex.EncodeToString(sum[:])[:FileIDLength]
}

// ExtractedDocument is the canonical representation of one source file
// after content extraction and before chunking. It is produced once by
// an extractor and immutable afterwards.
type ExtractedDocument struct {
	// ID is the stable document identifier, derived via FileID.
	ID string

	// Path is the source file location on disk.
	Path string

	// Title is the human-readable title derived by the extractor.
	Title string

	// Type classifies the document for prompt selection.
	Type DocType

	// Content is the full extracted text before chunking.
	Content string

	// Metadata carries extractor-specific key-value pairs
	// (language, page count, OCR flag, context hints).
	Metadata map[string]any
}

// Chunk is one bounded, possibly overlapping word window of a document's
// text: the unit of work sent to the generation backend.
type Chunk struct {
	// Text is the word-aligned window content.
	Text string `json:"text"`

	// ChunkID is the ordinal position within the parent document.
	ChunkID int `json:"chunk_id"`

	// Title is copied from the parent document.
	Title string `json:"title"`

	// DocType is copied from the parent document.
	DocType DocType `json:"doc_type"`

	// TotalChunks is the parent's final chunk count, backfilled once
	// windowing completes.
	TotalChunks int `json:"total_chunks"`

	// OverlapStart is true when the window shares words with its predecessor.
	OverlapStart bool `json:"overlap_start"`

	// OverlapEnd is true when the window shares words with its successor.
	OverlapEnd bool `json:"overlap_end"`
}

// ChunkSet is the persisted per-document output of the extraction stage
// and the input of the generation stage. One file per document.
type ChunkSet struct {
	// FilePath is the original source file location.
	FilePath string `json:"file_path"`

	// FileID is the stable document identifier.
	FileID string `json:"file_id"`

	// Metadata is the extractor metadata, carried through to the
	// formatted output unchanged.
	Metadata map[string]any `json:"metadata"`

	// Chunks is the ordered chunk list.
	Chunks []Chunk `json:"chunks"`

	// Stats summarises how the chunk set was produced.
	Stats ExtractionInfo `json:"extraction_stats"`
}

// ExtractionInfo records how a chunk set was produced.
type ExtractionInfo struct {
	TotalChunks    int    `json:"total_chunks"`
	ContentLength  int    `json:"content_length"`
	ProcessingDate string `json:"processing_date"`
}

// MetaString returns a string metadata value, or fallback when the key
// is absent or not a string. Chunk sets written by other tools may omit
// optional metadata.
func (s *ChunkSet) MetaString(key, fallback string) string {
	if s.Metadata == nil {
		return fallback
	}
	if v, ok := s.Metadata[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
