package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFile indicates no extractor claims the file.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrEmptyDocument indicates extraction produced no usable text.
	ErrEmptyDocument = errors.New("empty document")

	// Generation Errors.

	// ErrBackendUnavailable indicates the generation backend cannot be
	// reached. Fatal for a run; checked once before any work starts.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrModelNotFound indicates the configured model is not present on
	// the backend.
	ErrModelNotFound = errors.New("model not found")

	// ErrNoUsableOutput indicates every attempt for a chunk failed or
	// returned nothing parseable. Surfaced as a per-chunk skip, never
	// fatal to the document.
	ErrNoUsableOutput = errors.New("no usable output")

	// ErrCorruptChunkSet indicates a chunk-set file could not be read
	// or decoded. The document counts as failed; the run continues.
	ErrCorruptChunkSet = errors.New("corrupt chunk set")
)
