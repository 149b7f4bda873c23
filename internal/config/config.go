package config

import "os"

// Config is the client's runtime configuration, read from the environment.
type Config struct {
	// APIBaseURL is the backend base path, including the /api prefix.
	APIBaseURL string
	// StatePath is the sqlite file holding session and cart records.
	StatePath string
	// MigrationsPath is the directory with the client state schema.
	MigrationsPath string
}

func Load() Config {
	return Config{
		APIBaseURL:     getEnv("FC_API_BASE_URL", "http://localhost:5041/api"),
		StatePath:      getEnv("FC_STATE_PATH", "fc-front.db"),
		MigrationsPath: getEnv("FC_MIGRATIONS_PATH", "migrations"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
