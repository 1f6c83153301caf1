package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Q&A pairs from stored chunk sets",
	Long: `Sends every unprocessed chunk set through the language model and
stores the accepted question/answer pairs, one output file per source
document. Documents that already have output are skipped, so an
interrupted run can be resumed by running again.

Run 'qaforge extract' first to produce chunk sets, or 'qaforge run'
to do both stages in one go.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if pipelineRunner == nil {
		return errors.New("generation pipeline not configured")
	}

	setupRunLog()
	defer logger.Close()

	cmd.Println("Generating Q&A pairs...")

	stats, err := generateWithProgress(cmd.Context(), cmd, pipelineRunner)
	printRunStats(cmd, stats)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

// generateWithProgress runs the pipeline while displaying progress updates.
func generateWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	runner driving.PipelineRunner,
) (*domain.RunStats, error) {
	type runResult struct {
		stats *domain.RunStats
		err   error
	}

	// Run in a goroutine so the command loop can poll status
	resultCh := make(chan runResult, 1)
	go func() {
		stats, err := runner.Run(ctx)
		resultCh <- runResult{stats: stats, err: err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resultCh:
			if lastCount > 0 {
				cmd.Println()
			}
			return res.stats, res.err
		case <-ticker.C:
			status := runner.Status()
			if status != nil && status.DocumentsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d documents, %d pairs",
					status.DocumentsProcessed, status.PairsGenerated)
				lastCount = status.DocumentsProcessed
			}
		}
	}
}

func printRunStats(cmd *cobra.Command, stats *domain.RunStats) {
	if stats == nil {
		return
	}
	cmd.Println("Run summary:")
	cmd.Printf("  Chunk sets found:    %d\n", stats.Found)
	cmd.Printf("  Already processed:   %d\n", stats.AlreadyProcessed)
	cmd.Printf("  Processed this run:  %d\n", stats.Processed)
	cmd.Printf("  Failed:              %d\n", stats.Failed)
	cmd.Printf("  Q&A pairs generated: %d\n", stats.TotalPairs)
	cmd.Printf("  Filtered by quality: %d\n", stats.QualityFiltered)
}
