package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// doctorPingTimeout bounds the backend probes.
const doctorPingTimeout = 5 * time.Second

// estimatedSecondsPerFile is the rough per-document generation cost
// used for the time estimate.
const estimatedSecondsPerFile = 16

// BackendProber is the slice of the generation backend the doctor
// probes: liveness and the installed model list.
type BackendProber interface {
	Ping(ctx context.Context) error
	ListModels(ctx context.Context) ([]string, error)
	ModelName() string
}

// DataSource is the slice of the document source the doctor inspects.
type DataSource interface {
	Root() string
	Validate(ctx context.Context) error
	Discover(ctx context.Context) ([]string, error)
}

// DoctorConfig holds the probes the environment checks run against.
type DoctorConfig struct {
	Backend BackendProber
	Source  DataSource
}

var doctorConfig *DoctorConfig

// SetDoctorConfig sets the probes used by the doctor command.
func SetDoctorConfig(config *DoctorConfig) {
	doctorConfig = config
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment before a run",
	Long: `Runs the checks a generation run depends on: the configuration file,
the data directory, the output directories, the generation backend and
the configured model. Prints a remediation hint for every failing
check and exits non-zero if any blocking check fails.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("QAForge Doctor")
	cmd.Println("==============")
	cmd.Println()

	failed := 0

	// 1. Configuration
	settings, err := settingsService.Get()
	if err != nil {
		cmd.Printf("[ERROR] Configuration: %v\n", err)
		cmd.Println("Fix or remove the file, or recreate it with 'qaforge config init --force'.")
		return errors.New("configuration unreadable")
	}
	if err := settings.Validate(); err != nil {
		cmd.Printf("[ERROR] Configuration: %v\n", err)
		cmd.Println("Run 'qaforge config show' to review the current values.")
		failed++
	} else {
		cmd.Printf("[OK] Configuration (%s)\n", settingsService.Path())
	}

	// 2. Data directory
	fileCount := 0
	if doctorConfig == nil || doctorConfig.Source == nil {
		cmd.Println("[ERROR] Data directory: source not configured")
		failed++
	} else {
		fileCount = checkDataDir(cmd, doctorConfig.Source, &failed)
	}

	// 3. Output directories
	checkWritable(cmd, settings, &failed)

	// 4. Generation backend and model
	if doctorConfig == nil || doctorConfig.Backend == nil {
		cmd.Println("[ERROR] Generation backend not configured")
		cmd.Println("Run 'qaforge config show' to review the llm section.")
		failed++
	} else {
		checkBackend(cmd, doctorConfig.Backend, settings.LLM.Provider, &failed)
	}

	// 5. OCR tooling. Not blocking: other file types still extract.
	if settings.Extraction.EnableOCR {
		if _, err := exec.LookPath("tesseract"); err != nil {
			cmd.Println("[MISSING] tesseract not found on PATH")
			cmd.Println("Images will be skipped. Install tesseract, or disable extraction.enable_ocr.")
		} else {
			cmd.Println("[OK] tesseract available for image OCR")
		}
	}

	if fileCount > 0 {
		estimated := float64(fileCount) * estimatedSecondsPerFile / 60
		cmd.Println()
		cmd.Printf("Estimated generation time: %.1f minutes\n", estimated)
		cmd.Println("(actual time depends on file sizes and model speed)")
	}

	cmd.Println()
	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	cmd.Println("All checks passed. Ready to run 'qaforge run'.")
	return nil
}

// checkDataDir validates the input tree and prints a per-extension
// overview of the discovered files. Returns the file count.
func checkDataDir(cmd *cobra.Command, source DataSource, failed *int) int {
	ctx := cmd.Context()

	if err := source.Validate(ctx); err != nil {
		cmd.Printf("[ERROR] Data directory: %v\n", err)
		cmd.Printf("Create %s and put source documents in it, or change paths.data_dir.\n", source.Root())
		*failed++
		return 0
	}

	paths, err := source.Discover(ctx)
	if err != nil {
		cmd.Printf("[ERROR] Data directory: %v\n", err)
		*failed++
		return 0
	}
	if len(paths) == 0 {
		cmd.Printf("[ERROR] No files found under %s\n", source.Root())
		cmd.Println("Put source documents (PDF, Markdown, code, images, text) in the data directory.")
		*failed++
		return 0
	}

	cmd.Printf("[OK] Found %d files under %s\n", len(paths), source.Root())
	byExt := map[string]int{}
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		if ext == "" {
			ext = "(no extension)"
		}
		byExt[ext]++
	}
	for _, ext := range sortedTypeKeys(byExt) {
		cmd.Printf("      %s: %d files\n", ext, byExt[ext])
	}
	return len(paths)
}

// checkWritable verifies the output directories can be created.
func checkWritable(cmd *cobra.Command, settings *domain.Settings, failed *int) {
	for _, dir := range []string{
		settings.Paths.ChunksDir,
		settings.Paths.FormattedDir,
		settings.Paths.MetadataDir,
	} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			cmd.Printf("[ERROR] Cannot create output directory %s: %v\n", dir, err)
			*failed++
			return
		}
	}
	cmd.Println("[OK] Output directories writable")
}

// checkBackend probes liveness and then looks for the configured model
// in the backend's model list.
func checkBackend(cmd *cobra.Command, backend BackendProber, provider domain.Provider, failed *int) {
	ctx, cancel := context.WithTimeout(cmd.Context(), doctorPingTimeout)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		cmd.Printf("[ERROR] Cannot reach the generation backend: %v\n", err)
		if provider == domain.ProviderOllama {
			cmd.Println("Start Ollama with: ollama serve")
		} else {
			cmd.Println("Check llm.base_url and llm.api_key with 'qaforge config show'.")
		}
		*failed++
		return
	}
	cmd.Println("[OK] Generation backend reachable")

	model := backend.ModelName()
	models, err := backend.ListModels(ctx)
	if err != nil {
		cmd.Printf("[ERROR] Cannot list models: %v\n", err)
		*failed++
		return
	}
	if !modelAvailable(models, model) {
		cmd.Printf("[ERROR] Model %s not found on the backend\n", model)
		if provider == domain.ProviderOllama {
			cmd.Printf("Run: ollama pull %s\n", model)
		}
		*failed++
		return
	}
	cmd.Printf("[OK] Model %s available\n", model)
}

// modelAvailable reports whether the configured model appears in the
// backend's list. Ollama model names carry a ":tag" suffix, so a bare
// configured name matches any tag of that model.
func modelAvailable(models []string, want string) bool {
	for _, name := range models {
		if name == want || strings.HasPrefix(name, want+":") {
			return true
		}
	}
	return false
}
