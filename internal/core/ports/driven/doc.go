// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSource: Enumerates candidate source files
//   - Extractor: Turns one source file into an ExtractedDocument
//   - ExtractorRegistry: Selects the extractor for a path
//   - Chunker: Splits documents into word-window chunks
//   - ChunkStore: Chunk-set persistence
//   - OutputStore: Formatted-output persistence
//   - LLMService: The text-generation backend
//   - SettingsStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: User-editable prompt templates. Without it, embedded
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
