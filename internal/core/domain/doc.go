// Package domain defines the core business entities for QAForge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ExtractedDocument: One source file after content extraction
//   - Chunk: A bounded word window of a document, the generation work unit
//   - ChunkSet: The persisted per-document result of the extraction stage
//   - QAPair: One question/answer pair destined for the training corpus
//   - FormattedOutput: The persisted per-document generation result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
