package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract documents and generate Q&A pairs",
	Long: `Runs the full pipeline with the configured defaults: extracts and
chunks every document under the data directory, then generates Q&A
pairs for each chunk set and writes one output file per document.

Both stages skip work that is already done, so running again after an
interruption picks up where the previous run stopped.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if extractionRunner == nil {
		return errors.New("extraction service not configured")
	}
	if pipelineRunner == nil {
		return errors.New("generation pipeline not configured")
	}

	setupRunLog()
	defer logger.Close()

	// Stage 1: extraction
	cmd.Println("Extracting documents...")
	extractionStats, err := extractionRunner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	printExtractionStats(cmd, extractionStats)
	cmd.Println()

	// Stage 2: generation
	cmd.Println("Generating Q&A pairs...")
	runStats, err := generateWithProgress(cmd.Context(), cmd, pipelineRunner)
	printRunStats(cmd, runStats)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}
