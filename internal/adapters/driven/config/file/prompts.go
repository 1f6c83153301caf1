package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads generation prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded
// defaults. An empty directory disables file loading entirely: the embedded
// defaults are served and nothing is written to disk.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompt templates, one per
// document type plus the general fallback. Each template takes three %s
// placeholders in order: document type, title, chunk content.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptQAGeneral: `Convert this cybersecurity content into question-answer pairs for training an AI assistant.

Create Q&A pairs that focus on:
- Technical procedures and methods
- Tools and commands
- Vulnerability concepts
- Step-by-step processes

Format EXACTLY like this:
Q: [specific question]
A: [detailed answer]

Q: [another question]
A: [another answer]

Document Type: %s
Title: %s

Content:
%s

Q&A Pairs:`,

	driven.PromptQAWriteup: `Convert this security writeup into question-answer pairs for training an AI assistant.

Create Q&A pairs that focus on:
- The vulnerability or weakness that was exploited
- The tools and commands used at each step
- Why each step of the solution works
- Lessons that transfer to similar targets

Format EXACTLY like this:
Q: [specific question]
A: [detailed answer]

Q: [another question]
A: [another answer]

Document Type: %s
Title: %s

Content:
%s

Q&A Pairs:`,

	driven.PromptQACode: `Convert this source code into question-answer pairs for training an AI assistant.

Create Q&A pairs that focus on:
- What the code does and what it targets
- How the important functions and routines work
- The techniques or primitives it implements
- How it would be run and what the expected output is

Format EXACTLY like this:
Q: [specific question]
A: [detailed answer]

Q: [another question]
A: [another answer]

Document Type: %s
Title: %s

Content:
%s

Q&A Pairs:`,

	driven.PromptQAResearch: `Convert this research content into question-answer pairs for training an AI assistant.

Create Q&A pairs that focus on:
- The findings and their significance
- The methodology and how results were obtained
- Definitions of the key terms introduced
- Practical implications for defenders and attackers

Format EXACTLY like this:
Q: [specific question]
A: [detailed answer]

Q: [another question]
A: [another answer]

Document Type: %s
Title: %s

Content:
%s

Q&A Pairs:`,

	driven.PromptQAChallenge: `Convert this challenge description into question-answer pairs for training an AI assistant.

Create Q&A pairs that focus on:
- The objective and what a solve looks like
- The category and the skills it exercises
- Hints given and what they point towards
- Sensible first approaches

Format EXACTLY like this:
Q: [specific question]
A: [detailed answer]

Q: [another question]
A: [another answer]

Document Type: %s
Title: %s

Content:
%s

Q&A Pairs:`,
}

// NewPromptStore creates a new file-based prompt store rooted at promptDir.
// An empty promptDir serves embedded defaults without touching disk.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) *PromptStore {
	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}
}

// Load returns the prompt template for the given name.
// When a prompt directory is configured, the first call materialises the
// default files there so users have something to edit; user edits then take
// precedence over the embedded defaults. Unknown names are an error.
func (s *PromptStore) Load(name string) (string, error) {
	if s.promptDir == "" {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path. Empty means embedded defaults only.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Qaforge Prompts

This directory contains the prompt templates used to turn document chunks
into Q&A pairs. One template exists per document type, plus a general
fallback.

## Files

- ` + "`qa_general.txt`" + ` - Fallback for unclassified documents
- ` + "`qa_writeup.txt`" + ` - Solution writeups and walkthroughs
- ` + "`qa_code.txt`" + ` - Source code files
- ` + "`qa_research.txt`" + ` - Research papers and analyses
- ` + "`qa_challenge.txt`" + ` - Challenge descriptions

## Customisation

Edit any file to change how pairs are generated for that document type.
Changes take effect on the next run.

## Format Placeholders

Each template takes three ` + "`%s`" + ` placeholders, filled in order with the
document type, the document title, and the chunk content. Keep all three
in your customised templates, in that order.
`
	return os.WriteFile(path, []byte(content), 0600)
}
