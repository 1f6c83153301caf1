// Package cli implements the qaforge command tree. Commands reach the
// application through package-level service variables; main wires them
// via SetBootstrap, which runs once the persistent flags are parsed,
// and tests inject fakes through the Set functions directly.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driving"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	cfgFile string
	verbose bool
)

// Services the commands run against. Nil until injected.
var (
	settingsService  driving.SettingsService
	extractionRunner driving.ExtractionRunner
	pipelineRunner   driving.PipelineRunner
	datasetAnalyzer  driving.DatasetAnalyzer
)

// Bootstrap builds the application services from the settings file.
// It runs after flag parsing, so implementations see the --config value.
type Bootstrap func(configPath string) error

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "qaforge",
	Short: "Generate Q&A training data from documents",
	Long: `QAForge converts a directory of documents (PDF, Markdown, source code,
images, plain text) into question/answer training pairs using a locally
hosted language model.

Typical flow:
  qaforge doctor     check the environment before a long run
  qaforge run        extract documents and generate Q&A pairs
  qaforge analyze    inspect the generated dataset

An interrupted run can simply be started again: documents that already
have output are skipped.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default qaforge.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// initApp prepares logging and wires the services before any command
// runs. Tests leave bootstrap unset and inject services themselves.
func initApp(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}
	return bootstrap(cfgFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command; cancelling ctx stops
// long-running commands such as extract --watch.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetBootstrap registers the service construction hook run before each
// command.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(service driving.SettingsService) {
	settingsService = service
}

// SetExtractionRunner sets the extraction runner used by commands.
func SetExtractionRunner(runner driving.ExtractionRunner) {
	extractionRunner = runner
}

// SetPipelineRunner sets the generation pipeline used by commands.
func SetPipelineRunner(runner driving.PipelineRunner) {
	pipelineRunner = runner
}

// SetDatasetAnalyzer sets the dataset analyzer used by commands.
func SetDatasetAnalyzer(analyzer driving.DatasetAnalyzer) {
	datasetAnalyzer = analyzer
}

// setupRunLog mirrors log output to qaforge.log under the metadata
// directory for the duration of a long-running command. Best effort: a
// failure downgrades to console-only logging. Callers should defer
// logger.Close.
func setupRunLog() {
	if settingsService == nil {
		return
	}
	settings, err := settingsService.Get()
	if err != nil || settings.Paths.MetadataDir == "" {
		return
	}

	dir := settings.Paths.MetadataDir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Warn("Cannot create metadata directory %s: %v", dir, err)
		return
	}
	if err := logger.Setup(logger.IsVerbose(), filepath.Join(dir, "qaforge.log")); err != nil {
		logger.Warn("Run log disabled: %v", err)
	}
}
