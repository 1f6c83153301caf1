// Package image extracts text from images by shelling out to tesseract.
package image

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// ErrOCRToolNotFound indicates the tesseract binary is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

// noTextPlaceholder stands in for images with no recognisable text, so
// the document still records that OCR ran.
const noTextPlaceholder = "No text detected in image"

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// extensions lists the image types handed to OCR.
var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// Extractor handles images via OCR.
type Extractor struct {
	runner driven.CommandRunner
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New creates a new image extractor using the system tesseract binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an image extractor with a custom command runner.
// Used in tests to avoid requiring tesseract.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// CheckAvailable reports whether tesseract is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing tesseract.
func InstallInstructions() string {
	return `tesseract is required for image OCR:
  macOS:         brew install tesseract
  Debian/Ubuntu: apt install tesseract-ocr
  Fedora:        dnf install tesseract`
}

// Supports reports whether the extractor claims the path.
func (e *Extractor) Supports(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 40
}

// Extract runs OCR over the image. Images where tesseract finds no
// text still produce a document, carrying a placeholder body.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.ExtractedDocument, error) {
	if err := CheckAvailable(); err != nil {
		return nil, err
	}

	output, err := e.runner.Run(ctx, "tesseract", path, "stdout")
	if err != nil {
		return nil, fmt.Errorf("tesseract failed for %s: %w", path, err)
	}

	content := strings.TrimSpace(string(output))
	if content == "" {
		content = noTextPlaceholder
	}

	title := "Image: " + filepath.Base(path)

	return &domain.ExtractedDocument{
		ID:      domain.FileID(path),
		Path:    path,
		Title:   title,
		Type:    domain.DocTypeImage,
		Content: content,
		Metadata: map[string]any{
			"filename":      filepath.Base(path),
			"file_path":     path,
			"title":         title,
			"doc_type":      domain.DocTypeImage.String(),
			"ocr_extracted": true,
		},
	}, nil
}
