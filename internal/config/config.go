// Package config loads and validates application configuration from
// environment variables, with optional .env file support for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names a persistence adapter variant. Exactly one is active per
// process; there is no runtime switching.
type Backend string

const (
	// BackendLocal stores the collection as one JSON blob in Redis, the
	// server-side analog of browser local storage.
	BackendLocal Backend = "local"
	// BackendBlob stores the collection against a remote JSON blob endpoint.
	BackendBlob Backend = "blob"
	// BackendPostgres stores one row per place in a managed Postgres table.
	BackendPostgres Backend = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body sizes. Defaults to 8 MiB, enough for
	// a handful of embedded photos per place and for import uploads.
	MaxBodyBytes int64

	// StorageBackend selects the persistence adapter. Defaults to local.
	StorageBackend Backend

	// DatabaseURL is the Postgres connection string.
	// Required when StorageBackend is postgres.
	DatabaseURL string

	// RedisAddress, RedisPassword, and RedisDB configure the local
	// key-value variant. Address defaults to "localhost:6379".
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// BlobEndpoint is the remote blob URL (GET reads the collection,
	// POST overwrites it). Required when StorageBackend is blob.
	BlobEndpoint string

	// AIAPIKey, AIEndpoint, and AIModel configure the extraction backend.
	// When AIAPIKey is empty the extraction endpoint reports itself as
	// not configured; everything else keeps working.
	AIAPIKey   string
	AIEndpoint string
	AIModel    string
}

// Load reads configuration from the environment (and a .env file when one is
// present) and returns a Config. Returns an error naming any variable that
// is required for the selected storage backend but not set.
func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes:   8 << 20,
		StorageBackend: Backend(getEnv("STORAGE_BACKEND", string(BackendLocal))),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		BlobEndpoint:   os.Getenv("BLOB_ENDPOINT"),
		AIAPIKey:       os.Getenv("AI_API_KEY"),
		AIEndpoint:     os.Getenv("AI_ENDPOINT"),
		AIModel:        os.Getenv("AI_MODEL"),
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_DB must be an integer, got %q", v)
		}
		cfg.RedisDB = n
	}

	var missing []string
	switch cfg.StorageBackend {
	case BackendLocal:
		// RedisAddress always has a default.
	case BackendBlob:
		if cfg.BlobEndpoint == "" {
			missing = append(missing, "BLOB_ENDPOINT")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be one of local, blob, postgres; got %q", cfg.StorageBackend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
