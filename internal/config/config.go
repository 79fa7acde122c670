/**
 * @description
 * Configuration loader for the StayLens backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 *
 * @notes
 * - Fails fast if DATABASE_URL is missing.
 * - The coordinate fallback defaults to Dubai city center; deployments targeting
 *   a different city override DATASET_FALLBACK_LAT / DATASET_FALLBACK_LON.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	SerpAPI SerpAPIConfig
	Dataset DatasetConfig
	Auth    AuthConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// SerpAPIConfig holds the hotel-search API endpoint and key
type SerpAPIConfig struct {
	BaseURL string
	APIKey  string
}

// DatasetConfig holds dataset source settings for the cleaning pipeline
type DatasetConfig struct {
	// FilePath points at the bundled CSV/XLSX used when no snapshot is active
	FilePath string
	// FallbackLat/FallbackLon fill missing coordinates (city-center default)
	FallbackLat float64
	FallbackLon float64
	// CacheTTL bounds how long a cleaned table stays memoized in Redis
	CacheTTL time.Duration
}

// AuthConfig holds login settings
type AuthConfig struct {
	JWTSecret string
	// Users maps username -> sha256 hex of the password
	Users map[string]string
	// TokenTTL bounds how long an issued session token stays valid
	TokenTTL time.Duration
}

// Default credential set, matching the dashboard's built-in accounts.
// Overridden in production via AUTH_USERS ("name:sha256hex,name:sha256hex").
const defaultUsers = "admin:240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9," +
	"analyst:20249749412d73a3f5799f6f1dcf910e7b4aa3ce4de133b1f8a63c044792a4e9," +
	"demo:2a97516c354b68848cdbd8f54a226a0a55b21ed138e207ad6c5cbb9c00aa5aea"

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		SerpAPI: SerpAPIConfig{
			BaseURL: getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search"),
			APIKey:  sanitizeCredential(getEnv("SERPAPI_API_KEY", "")),
		},
		Dataset: DatasetConfig{
			FilePath:    getEnv("DATASET_FILE_PATH", "data/dubai_hotels.csv"),
			FallbackLat: getEnvAsFloat("DATASET_FALLBACK_LAT", 25.2048),
			FallbackLon: getEnvAsFloat("DATASET_FALLBACK_LON", 55.2708),
			CacheTTL:    time.Duration(getEnvAsInt("DATASET_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: sanitizeCredential(getEnv("JWT_SECRET", "")),
			Users:     parseUsers(getEnv("AUTH_USERS", defaultUsers)),
			TokenTTL:  time.Duration(getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SerpAPI.APIKey == "" && cfg.Server.Env != "test" {
		// Not fatal: the dashboard still serves the bundled file or the sample dataset
		fmt.Println("Warning: SERPAPI_API_KEY is missing. Live data fetching will be unavailable.")
	}
	if cfg.JWTSecretBytes() == nil {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.Auth.Users) == 0 {
		return fmt.Errorf("AUTH_USERS must contain at least one username:hash pair")
	}
	return nil
}

// JWTSecretBytes returns the signing secret, or nil if unset
func (c *Config) JWTSecretBytes() []byte {
	if c.Auth.JWTSecret == "" {
		return nil
	}
	return []byte(c.Auth.JWTSecret)
}

// parseUsers parses "name:sha256hex,name:sha256hex" into a lookup map
func parseUsers(raw string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, hash, ok := strings.Cut(pair, ":")
		if !ok || name == "" || hash == "" {
			continue
		}
		users[strings.TrimSpace(name)] = strings.ToLower(strings.TrimSpace(hash))
	}
	return users
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper to get env var as float
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}
