package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"weather-history-loader/internal/container"
)

// The observation point is fixed: Saint Petersburg, Russia.
const (
	Latitude  = 59.9375
	Longitude = 30.308611
	Timezone  = "Europe/Moscow"
)

// ClearSkyTempThreshold is the report's "warm day" cutoff in °C.
const ClearSkyTempThreshold = 20.0

var validate = validator.New()

// AppConfig holds every knob of the pipeline run.
type AppConfig struct {
	// Months is the size of the fetch window, counted back from today.
	Months int `validate:"min=1"`

	// Container and database parameters.
	ContainerName string `validate:"required"`
	DBName        string `validate:"required"`
	DBUser        string `validate:"required"`
	DBPassword    string `validate:"required"`
	DBHost        string `validate:"required"`
	// InternalPort is the port Postgres listens on inside the container;
	// ExternalPort is the host-side mapping (distinct so a locally installed
	// Postgres does not clash).
	InternalPort int `validate:"min=1,max=65535"`
	ExternalPort int `validate:"min=1,max=65535"`

	TableName string `validate:"required"`

	// Outbound HTTP behaviour.
	HTTPTimeout time.Duration
	CacheDir    string `validate:"required"`
	CacheTTL    time.Duration

	// Teardown selects the end-of-run decision: ask, yes or no.
	Teardown container.TeardownMode
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Months:        getenvInt("WEATHER_MONTHS", 2),
		ContainerName: getenvDefault("CONTAINER_NAME", "postgres_weather"),
		DBName:        getenvDefault("DB_NAME", "postgres"),
		DBUser:        getenvDefault("DB_USER", "user"),
		DBPassword:    getenvDefault("DB_PASSWORD", "pass"),
		DBHost:        getenvDefault("DB_HOST", "localhost"),
		InternalPort:  getenvInt("DB_PORT", 5432),
		ExternalPort:  getenvInt("DB_PORT_EXTERNAL", 5433),
		TableName:     getenvDefault("TABLE_NAME", "daily_weather"),
		CacheDir:      getenvDefault("HTTP_CACHE_DIR", ".cache"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttlStr := getenvDefault("HTTP_CACHE_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	mode, err := container.ParseTeardownMode(getenvDefault("TEARDOWN", "ask"))
	if err != nil {
		return nil, fmt.Errorf("invalid TEARDOWN: %w", err)
	}
	cfg.Teardown = mode

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
