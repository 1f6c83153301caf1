package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQAGeneral is the fallback Q&A generation prompt used when no
	// document-type specific template exists. The template expects %s
	// placeholders for document type, title, and chunk content.
	PromptQAGeneral = "qa_general"

	// PromptQAWriteup targets CTF writeups and walkthrough documents,
	// asking for questions about techniques, tools, and solution steps.
	PromptQAWriteup = "qa_writeup"

	// PromptQACode targets source code, asking for questions about what
	// the code does, how it works, and what it exploits or implements.
	PromptQACode = "qa_code"

	// PromptQAResearch targets research papers, asking for questions
	// about findings, methodology, and conclusions.
	PromptQAResearch = "qa_research"

	// PromptQAChallenge targets challenge descriptions, asking for
	// questions about objectives, categories, and approaches.
	PromptQAChallenge = "qa_challenge"
)
