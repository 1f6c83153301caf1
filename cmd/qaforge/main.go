// qaforge turns a directory of documents into question/answer training
// data using a locally hosted language model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/ai"
	configfile "github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/config/file"
	storagefile "github.com/qaforge-labs/qaforge-cli/internal/adapters/driven/storage/file"
	"github.com/qaforge-labs/qaforge-cli/internal/adapters/driving/cli"
	"github.com/qaforge-labs/qaforge-cli/internal/chunker"
	"github.com/qaforge-labs/qaforge-cli/internal/connectors/filesystem"
	"github.com/qaforge-labs/qaforge-cli/internal/core/services"
	"github.com/qaforge-labs/qaforge-cli/internal/extractors"
	codeextractor "github.com/qaforge-labs/qaforge-cli/internal/extractors/code"
	imageextractor "github.com/qaforge-labs/qaforge-cli/internal/extractors/image"
	markdownextractor "github.com/qaforge-labs/qaforge-cli/internal/extractors/markdown"
	pdfextractor "github.com/qaforge-labs/qaforge-cli/internal/extractors/pdf"
	plaintextextractor "github.com/qaforge-labs/qaforge-cli/internal/extractors/plaintext"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// defaultConfigFile is the settings location when --config is not given.
const defaultConfigFile = "qaforge.toml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(buildServices)

	err := cli.ExecuteContext(ctx)
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// buildServices wires the application from the settings file. When the
// settings are unusable only the settings service is wired, so config
// and doctor still run and can report the problem.
func buildServices(configPath string) error {
	if configPath == "" {
		configPath = defaultConfigFile
	}

	settingsStore := configfile.NewSettingsStore(configPath)
	cli.SetSettingsService(services.NewSettingsService(settingsStore, ai.NewConfigValidator()))

	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn("Settings unreadable: %v", err)
		return nil
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Settings invalid: %v", err)
		return nil
	}

	chunkStore := storagefile.NewChunkStore(settings.Paths.ChunksDir)
	outputStore := storagefile.NewOutputStore(settings.Paths.FormattedDir)
	source := filesystem.New(settings.Paths.DataDir)

	// Extraction stage
	registry := extractors.NewRegistry()
	registry.Register(pdfextractor.New())
	registry.Register(markdownextractor.New())
	if settings.Extraction.EnableCode {
		registry.Register(codeextractor.New())
	}
	if settings.Extraction.EnableOCR {
		registry.Register(imageextractor.New())
	}
	registry.Register(plaintextextractor.New())

	chunkProcessor, err := chunker.New(
		chunker.WithMaxWords(settings.Chunking.MaxWords),
		chunker.WithOverlap(settings.Chunking.OverlapWords),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	cli.SetExtractionRunner(services.NewExtractionOrchestrator(
		source, registry, chunkProcessor, chunkStore,
		settings.Extraction.SkipExisting, settings.Paths.MetadataDir,
	))

	// Generation stage
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return fmt.Errorf("configuring generation backend: %w", err)
	}

	promptStore := configfile.NewPromptStore(settings.Prompts.Dir)
	cli.SetPipelineRunner(services.NewPipeline(
		chunkStore, outputStore,
		services.NewGenerator(llm, settings.LLM),
		services.NewResponseParser(),
		services.NewQualityGate(settings.Quality),
		services.NewPromptBuilder(promptStore),
		settings.Generation,
	))

	cli.SetDatasetAnalyzer(services.NewAnalyzer(outputStore))

	cli.SetDoctorConfig(&cli.DoctorConfig{
		Backend: llm,
		Source:  source,
	})

	return nil
}
