package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"weather-history-loader/internal/container"
)

// pipelinePackage is the main package the bootstrapper builds and runs.
const pipelinePackage = "./cmd/weather-history-loader"

// Bootstrapper prepares an isolated build directory, installs the module's
// dependency manifest, compiles the pipeline into it and runs the binary as
// a subprocess. Installation or subprocess failure is fatal; no retry.
type Bootstrapper struct {
	Runner container.CommandRunner
	// Dir is the target environment directory. A pre-existing directory is
	// reused, not recreated.
	Dir string
}

// Run performs the full bootstrap: ensure dir, download deps, build, exec.
// The returned error wraps the subprocess failure so the caller can
// propagate its exit status.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.ensureDir(); err != nil {
		return err
	}

	log.Printf("INFO: downloading module dependencies...")
	if err := b.Runner.Run(ctx, "go", "mod", "download"); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}

	bin := b.binaryPath()
	log.Printf("INFO: building the pipeline into %s...", bin)
	if err := b.Runner.Run(ctx, "go", "build", "-o", bin, pipelinePackage); err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	log.Printf("INFO: running the pipeline...")
	if err := b.Runner.Run(ctx, bin); err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	return nil
}

func (b *Bootstrapper) ensureDir() error {
	if _, err := os.Stat(b.Dir); err == nil {
		log.Printf("INFO: reusing existing environment directory %s.", b.Dir)
		return nil
	}
	log.Printf("INFO: creating environment directory %s...", b.Dir)
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("creating environment directory: %w", err)
	}
	return nil
}

func (b *Bootstrapper) binaryPath() string {
	name := "weather-history-loader"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(b.Dir, name)
}
