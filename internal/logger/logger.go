// Package logger provides structured logging for the qaforge CLI.
// Informational progress messages are always printed to stderr; debug
// messages appear when verbose mode is enabled via the --verbose flag.
// A log file can mirror all events as JSON for later inspection.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	logFile *os.File
	log     = zerolog.New(consoleWriter()).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
}

func levelFor(v bool) zerolog.Level {
	if v {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Setup configures logging for a command run. When path is non-empty,
// events are mirrored to that file as JSON lines in addition to the
// console. Replaces any previously configured log file.
func Setup(v bool, path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{consoleWriter()}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		writers = append(writers, f)
	}

	verbose = v
	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(levelFor(v))
	return nil
}

// Close releases the log file, if one was configured.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = log.Level(levelFor(v))
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sends all log events to the writer as JSON lines.
// Defaults to a console writer on os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger().Level(levelFor(verbose))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf("=== %s ===", name)
}
