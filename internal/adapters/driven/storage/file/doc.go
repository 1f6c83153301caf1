// Package file provides JSON-file-based implementations of the
// persistence ports. One file per document, named by its stable ID.
//
// Adapters:
//   - ChunkStore: chunk sets written by the extraction stage
//   - OutputStore: formatted Q&A outputs written by the generation stage
package file
