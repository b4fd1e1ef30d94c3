package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/exec"

	"weather-history-loader/internal/bootstrap"
	"weather-history-loader/internal/container"
)

func main() {
	b := &bootstrap.Bootstrapper{
		Runner: container.ExecRunner{},
		Dir:    envDefault("SETUP_DIR", ".weather-history-env"),
	}

	if err := b.Run(context.Background()); err != nil {
		// Propagate the subprocess exit status when there is one.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Printf("ERROR: %v", err)
			os.Exit(exitErr.ExitCode())
		}
		log.Fatalf("bootstrap failed: %v", err)
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
