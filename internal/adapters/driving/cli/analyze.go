package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarise the generated dataset",
	Long: `Reads every generated output file and reports dataset statistics:
pair counts, average question and answer lengths, the distribution
across document types, and likely duplicates.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if datasetAnalyzer == nil {
		return errors.New("analyzer not configured")
	}

	report, err := datasetAnalyzer.Analyze(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return outputReportJSON(cmd, report)
	}
	return outputReportTable(cmd, report)
}

func outputReportJSON(cmd *cobra.Command, report *domain.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReportTable(cmd *cobra.Command, report *domain.AnalysisReport) error {
	if report.Documents == 0 {
		cmd.Println("No generated output found. Run 'qaforge run' first.")
		return nil
	}

	cmd.Println("Dataset Report")
	cmd.Println("==============")
	cmd.Println()
	cmd.Printf("  Documents:           %d\n", report.Documents)
	cmd.Printf("  Q&A pairs:           %d\n", report.TotalPairs)
	cmd.Printf("  Avg question length: %.1f chars\n", report.AvgQuestionLen)
	cmd.Printf("  Avg answer length:   %.1f chars\n", report.AvgAnswerLen)
	cmd.Printf("  Short answers:       %d\n", report.ShortPairs)
	cmd.Printf("  Likely duplicates:   %d\n", report.Duplicates)

	if len(report.TypeDistribution) > 0 && report.TotalPairs > 0 {
		cmd.Println()
		cmd.Println("Pairs by document type:")
		for _, docType := range sortedTypeKeys(report.TypeDistribution) {
			count := report.TypeDistribution[docType]
			share := float64(count) / float64(report.TotalPairs) * 100
			cmd.Printf("  %-15s %5d  (%.1f%%)\n", docType, count, share)
		}
	}

	return nil
}

func sortedTypeKeys(distribution map[string]int) []string {
	keys := make([]string, 0, len(distribution))
	for key := range distribution {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
