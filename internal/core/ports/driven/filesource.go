package driven

import "context"

// FileSource discovers input documents under a configured root directory.
// The filesystem implementation walks the tree; Watch pushes change events
// for long-running extraction sessions.
type FileSource interface {
	// Root returns the configured root directory.
	Root() string

	// Validate checks the root exists and is readable.
	// Returns nil if ready to discover, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Discover walks the root and returns candidate file paths, sorted.
	// Hidden files, log files, and archives are skipped. Discovery does
	// not open files; unsupported types are filtered later by extractors.
	Discover(ctx context.Context) ([]string, error)

	// Watch listens for file creations and modifications under the root.
	// Events are delivered until ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan FileEvent, error)

	// Close releases resources.
	Close() error
}

// FileEvent describes a single filesystem change seen by Watch.
type FileEvent struct {
	// Path is the absolute path of the changed file.
	Path string

	// Op describes the change.
	Op FileOp
}

// FileOp is the kind of filesystem change carried by a FileEvent.
type FileOp string

// Filesystem change kinds.
const (
	// FileOpCreate indicates a new file appeared under the root.
	FileOpCreate FileOp = "create"

	// FileOpWrite indicates an existing file was modified.
	FileOpWrite FileOp = "write"

	// FileOpRemove indicates a file was deleted.
	FileOpRemove FileOp = "remove"
)
