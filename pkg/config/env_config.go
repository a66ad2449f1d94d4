// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvironmentConfig carries deployment-level settings that are not part
// of the game rules: where model data lives, logging, and display sync.
// All values come from ASTEROIDS_* environment variables with safe
// defaults.
type EnvironmentConfig struct {
	ModelDir  string
	LogLevel  string
	VSync     bool
	Seed      uint64
	ArenaSize float32

	// ArenaSizeSet records whether ASTEROIDS_ARENA_SIZE was present, so
	// the default does not clobber a file-configured arena size.
	ArenaSizeSet bool
}

// LoadConfigFromEnv builds an EnvironmentConfig from the environment,
// applying defaults for anything unset and validating the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		ModelDir:     getEnvOrDefault("ASTEROIDS_MODEL_DIR", "data/model"),
		LogLevel:     getEnvOrDefault("ASTEROIDS_LOG_LEVEL", "INFO"),
		VSync:        getBoolEnv("ASTEROIDS_VSYNC", true),
		Seed:         getUint64Env("ASTEROIDS_SEED", 0),
		ArenaSize:    getFloat32Env("ASTEROIDS_ARENA_SIZE", 500),
		ArenaSizeSet: os.Getenv("ASTEROIDS_ARENA_SIZE") != "",
	}

	if err := validateEnvironmentConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnvironmentOverrides copies environment-level overrides onto a
// game configuration. Only values actually present in the environment
// override the game configuration.
func (e *EnvironmentConfig) ApplyEnvironmentOverrides(game *GameConfig) {
	if e.ArenaSizeSet {
		game.ArenaSize = e.ArenaSize
	}
	if e.Seed != 0 {
		game.Seed = e.Seed
	}
}

// validateEnvironmentConfig checks that environment values are usable.
func validateEnvironmentConfig(cfg *EnvironmentConfig) error {
	if cfg.ModelDir == "" {
		return fmt.Errorf("ASTEROIDS_MODEL_DIR must not be empty")
	}
	switch cfg.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("ASTEROIDS_LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q",
			cfg.LogLevel)
	}
	if cfg.ArenaSize <= 0 {
		return fmt.Errorf("ASTEROIDS_ARENA_SIZE must be positive, got %v", cfg.ArenaSize)
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv parses a boolean environment variable, falling back to the
// default on absence or parse failure.
func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getUint64Env parses an unsigned integer environment variable, falling
// back to the default on absence or parse failure.
func getUint64Env(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getFloat32Env parses a float environment variable, falling back to the
// default on absence or parse failure.
func getFloat32Env(key string, defaultValue float32) float32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return defaultValue
	}
	return float32(parsed)
}
