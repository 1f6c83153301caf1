package domain

import "strings"

// DocType classifies a source document for prompt selection.
// The set is closed: anything unrecognised collapses to DocTypeDocument
// so template selection stays exhaustive.
type DocType string

// Known document types.
const (
	// DocTypeWriteup is a solution writeup or walkthrough.
	DocTypeWriteup DocType = "writeup"

	// DocTypeCode is a source code file.
	DocTypeCode DocType = "code"

	// DocTypeChallenge is a challenge or competition description.
	DocTypeChallenge DocType = "challenge"

	// DocTypeResearchPaper is a research paper or analysis.
	DocTypeResearchPaper DocType = "research_paper"

	// DocTypeDocumentation is a guide, README or manual.
	DocTypeDocumentation DocType = "documentation"

	// DocTypeReference is a cheat sheet or reference resource.
	DocTypeReference DocType = "reference"

	// DocTypeLog is tool output or a session log.
	DocTypeLog DocType = "log"

	// DocTypeImage is text recovered from an image via OCR.
	DocTypeImage DocType = "image"

	// DocTypeText is a plain text file with no stronger classification.
	DocTypeText DocType = "text"

	// DocTypeDocument is the fallback for everything else.
	DocTypeDocument DocType = "document"
)

// IsValid returns true if the document type is recognised.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypeWriteup, DocTypeCode, DocTypeChallenge, DocTypeResearchPaper,
		DocTypeDocumentation, DocTypeReference, DocTypeLog, DocTypeImage,
		DocTypeText, DocTypeDocument:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t DocType) Description() string {
	switch t {
	case DocTypeWriteup:
		return "Writeup (solution or walkthrough)"
	case DocTypeCode:
		return "Code (source file)"
	case DocTypeChallenge:
		return "Challenge (task description)"
	case DocTypeResearchPaper:
		return "Research paper"
	case DocTypeDocumentation:
		return "Documentation"
	case DocTypeReference:
		return "Reference (cheat sheet, resource list)"
	case DocTypeLog:
		return "Log (tool output)"
	case DocTypeImage:
		return "Image (OCR text)"
	case DocTypeText:
		return "Plain text"
	case DocTypeDocument:
		return "Document (unclassified)"
	default:
		return unknownDescription
	}
}

// ParseDocType maps a raw string onto the closed type set.
// Unknown or empty values fall back to DocTypeDocument rather than
// failing, because chunk sets may be produced by older tool versions.
func ParseDocType(s string) DocType {
	t := DocType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t
	}
	return DocTypeDocument
}
