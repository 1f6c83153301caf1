package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage qaforge configuration",
	Long: `View and edit the qaforge configuration file.

Every setting has a compiled default, so a minimal file only needs the
values you want to change. Without a file, qaforge runs entirely on
defaults: Ollama on localhost, data read from ./data, output written
under ./processed.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.Path())
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Data dir:      %s\n", settings.Paths.DataDir)
	cmd.Printf("  Chunks dir:    %s\n", settings.Paths.ChunksDir)
	cmd.Printf("  Formatted dir: %s\n", settings.Paths.FormattedDir)
	cmd.Printf("  Metadata dir:  %s\n", settings.Paths.MetadataDir)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Max words:     %d\n", settings.Chunking.MaxWords)
	cmd.Printf("  Overlap words: %d\n", settings.Chunking.OverlapWords)
	cmd.Println()

	cmd.Println("[Extraction]")
	cmd.Printf("  OCR images:    %v\n", settings.Extraction.EnableOCR)
	cmd.Printf("  Source code:   %v\n", settings.Extraction.EnableCode)
	cmd.Printf("  Skip existing: %v\n", settings.Extraction.SkipExisting)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model:    %s\n", settings.LLM.Model)
	cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key:  %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key:  (not set)\n")
		}
	}
	cmd.Printf("  Timeout:  %ds\n", settings.LLM.TimeoutSeconds)
	cmd.Printf("  Retries:  %d, %ds apart\n", settings.LLM.MaxRetries, settings.LLM.RetryDelaySeconds)
	if settings.LLM.RequestsPerMinute > 0 {
		cmd.Printf("  Rate limit: %d requests/minute\n", settings.LLM.RequestsPerMinute)
	}
	cmd.Println()

	cmd.Println("[Generation]")
	cmd.Printf("  Min chunk chars:   %d\n", settings.Generation.MinChunkChars)
	cmd.Printf("  Workers:           %d\n", settings.Generation.Workers)
	cmd.Printf("  Progress interval: %d\n", settings.Generation.ProgressInterval)
	cmd.Println()

	cmd.Println("[Quality]")
	cmd.Printf("  Min question chars: %d\n", settings.Quality.MinQuestionChars)
	cmd.Printf("  Min answer chars:   %d\n", settings.Quality.MinAnswerChars)
	cmd.Printf("  Min answer words:   %d\n", settings.Quality.MinAnswerWords)
	cmd.Printf("  Min distinct ratio: %.2f\n", settings.Quality.MinDistinctRatio)
	cmd.Println()

	if settings.Prompts.Dir != "" {
		cmd.Println("[Prompts]")
		cmd.Printf("  Dir: %s\n", settings.Prompts.Dir)
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Edit the file above, or run 'qaforge config init --force' to start over.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := settingsService.Path()
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cmd.Printf("Wrote default configuration to %s\n", path)
	cmd.Println("Edit it to point at your data, then check with 'qaforge doctor'.")
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
