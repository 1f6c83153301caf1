package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

var extractWatch bool

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and chunk source documents",
	Long: `Walks the data directory, extracts text from every supported file
(PDF, Markdown, source code, images, plain text) and stores one chunk
set per document, ready for the generation stage.

With --watch, keeps running after the initial pass and re-extracts
files as they appear or change. Stop with Ctrl-C.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractWatch, "watch", false, "keep watching for new and changed files")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if extractionRunner == nil {
		return errors.New("extraction service not configured")
	}

	setupRunLog()
	defer logger.Close()

	if extractWatch {
		cmd.Println("Extracting documents, then watching for changes. Press Ctrl-C to stop.")

		err := extractionRunner.Watch(cmd.Context())
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watch failed: %w", err)
		}
		cmd.Println("Watch stopped.")
		return nil
	}

	cmd.Println("Extracting documents...")

	stats, err := extractionRunner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	printExtractionStats(cmd, stats)
	return nil
}

func printExtractionStats(cmd *cobra.Command, stats *domain.ExtractionStats) {
	if stats == nil {
		return
	}
	cmd.Println("Extraction complete.")
	cmd.Printf("  Files found:      %d\n", stats.FilesFound)
	cmd.Printf("  Files processed:  %d\n", stats.FilesProcessed)
	cmd.Printf("  Skipped existing: %d\n", stats.SkippedExisting)
	cmd.Printf("  Chunks created:   %d\n", stats.ChunksCreated)
	if stats.Errors > 0 {
		cmd.Printf("  Errors:           %d (see log for details)\n", stats.Errors)
	}
}
