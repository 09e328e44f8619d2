package config

import (
	"os"
)

// Storage backend selectors for ChatsBackend.
const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
)

// Config holds all runtime configuration. It is loaded once at startup and
// passed into constructors; nothing reads the environment after Load returns.
type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	AssetsDir   string

	// Storage
	ChatsBackend string // "bolt" (default) or "postgres"
	ChatsDBPath  string // bbolt file for the bolt backend
	DatabaseURL  string // connection string for the postgres backend
	TablePrefix  string

	// Client catalog
	ClientsFile string

	// Completion gateway
	OpenAIAPIKey  string
	OpenAIBaseURL string
	DefaultModel  string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AssetsDir:   getEnv("ASSETS_DIR", "assets"),

		ChatsBackend: getEnv("STORAGE_BACKEND", StorageBolt),
		ChatsDBPath:  getEnv("CHATS_DB_PATH", "chats.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),

		ClientsFile: getEnv("CLIENTS_FILE", "clients.yaml"),

		OpenAIAPIKey:  getEnv("OAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OAI_BASE_URL", ""),
		DefaultModel:  getEnv("DEFAULT_MODEL", "gpt-4o"),
	}
}

// getTablePrefix returns the postgres table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
