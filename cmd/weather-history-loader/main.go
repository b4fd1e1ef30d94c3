package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"weather-history-loader/internal/app"
	"weather-history-loader/internal/config"
	"weather-history-loader/internal/container"
	"weather-history-loader/internal/store"
	"weather-history-loader/internal/weather"
	"weather-history-loader/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls, with a disk-backed
	// response cache under the retry/breaker layer.
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: providers.NewCachingTransport(nil, cfg.CacheDir, cfg.CacheTTL),
	}

	pipeline := &app.Pipeline{
		Cfg:      cfg,
		Provider: providers.NewOpenMeteoProvider(httpClient, config.Timezone),
		Runtime:  container.NewLauncher(container.ExecRunner{}),
		NewStore: func(sc store.Config) (weather.Store, error) {
			return store.Connect(sc)
		},
		In:  os.Stdin,
		Out: os.Stdout,
	}

	if err := pipeline.Run(context.Background()); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
}
