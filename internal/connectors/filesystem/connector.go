// Package filesystem discovers and watches input files under a local
// directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// debounceDelay coalesces write bursts: editors and downloads touch a
// file several times before its content settles.
const debounceDelay = 400 * time.Millisecond

// skippedExtensions are never worth extracting.
var skippedExtensions = map[string]bool{
	".zip": true,
	".tar": true,
	".gz":  true,
}

// Ensure Connector implements the interface.
var _ driven.FileSource = (*Connector)(nil)

// Connector reads input documents from a local directory.
type Connector struct {
	root string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a filesystem connector rooted at the given directory.
func New(root string) *Connector {
	return &Connector{root: root}
}

// Root returns the configured root directory.
func (c *Connector) Root() string {
	return c.root
}

// Validate checks the root exists and is a readable directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: data directory %s", domain.ErrNotFound, c.root)
		}
		return fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, c.root)
	}

	f, err := os.Open(c.root)
	if err != nil {
		return fmt.Errorf("data directory is not readable: %w", err)
	}
	return f.Close()
}

// Discover walks the root and returns eligible file paths, sorted.
func (c *Connector) Discover(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if hidden(d.Name()) && path != filepath.Clean(c.root) {
				return filepath.SkipDir
			}
			return nil
		}
		if eligible(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk data directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Watch emits events for eligible files created or modified under the
// root until ctx is cancelled or Close is called. Only one watch
// session is supported per connector.
func (c *Connector) Watch(ctx context.Context) (<-chan driven.FileEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := addDirs(watcher, c.root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	events := make(chan driven.FileEvent)
	go c.run(ctx, watcher, events)
	return events, nil
}

// Close stops any active watch session.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return nil
}

// run pumps fsnotify events onto the typed channel. Write bursts are
// coalesced per path; all sends happen here so closing the channel on
// exit is safe.
func (c *Connector) run(ctx context.Context, watcher *fsnotify.Watcher, events chan<- driven.FileEvent) {
	defer close(events)
	defer watcher.Close()

	pending := make(map[string]driven.FileOp)
	flush := time.NewTimer(debounceDelay)
	if !flush.Stop() {
		<-flush.C
	}

	emit := func(ev driven.FileEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			switch {
			case ev.Op.Has(fsnotify.Create):
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					c.watchNewDir(watcher, ev.Name, pending)
					flush.Reset(debounceDelay)
					continue
				}
				if eligible(ev.Name) {
					pending[ev.Name] = driven.FileOpCreate
					flush.Reset(debounceDelay)
				}
			case ev.Op.Has(fsnotify.Write):
				if eligible(ev.Name) {
					if _, seen := pending[ev.Name]; !seen {
						pending[ev.Name] = driven.FileOpWrite
					}
					flush.Reset(debounceDelay)
				}
			case ev.Op.Has(fsnotify.Remove):
				delete(pending, ev.Name)
				if eligible(ev.Name) {
					emit(driven.FileEvent{Path: ev.Name, Op: driven.FileOpRemove})
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				logger.Warn("watcher error: %v", err)
			}

		case <-flush.C:
			for path, op := range pending {
				emit(driven.FileEvent{Path: path, Op: op})
			}
			clear(pending)
		}
	}
}

// watchNewDir registers a directory created mid-session and queues the
// eligible files already inside it.
func (c *Connector) watchNewDir(watcher *fsnotify.Watcher, dir string, pending map[string]driven.FileOp) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if hidden(d.Name()) && path != dir {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		if eligible(path) {
			pending[path] = driven.FileOpCreate
		}
		return nil
	})
	if err != nil {
		logger.Warn("failed to watch new directory %s: %v", dir, err)
	}
}

// addDirs registers the root and every visible subdirectory.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if hidden(d.Name()) && path != filepath.Clean(root) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// eligible reports whether a path is worth handing to an extractor.
// Hidden files, log output, and archives are noise.
func eligible(path string) bool {
	name := filepath.Base(path)
	if hidden(name) {
		return false
	}
	if strings.HasSuffix(name, ".log") {
		return false
	}
	return !skippedExtensions[strings.ToLower(filepath.Ext(name))]
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
