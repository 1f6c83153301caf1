// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull text
// content and metadata out of a specific family of file extensions.
//
// Extractors are registered with the Registry at startup.
package extractors
