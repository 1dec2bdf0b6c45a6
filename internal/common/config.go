package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Engine   EngineConfig
	Training TrainingConfig
}

// DatabaseConfig holds the training-corpus / model-artifact store settings.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// EngineConfig holds extraction thresholds.
type EngineConfig struct {
	// AssignConfidence gates learned field assignments; below it the
	// heuristic fallback decides.
	AssignConfidence float64
	ContextWindow    int
}

// TrainingConfig holds batch-training settings.
type TrainingConfig struct {
	Epochs       int
	LearningRate float64
	CSVSeedPath  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Engine: EngineConfig{
			AssignConfidence: getEnvAsFloat64("ASSIGN_CONFIDENCE", 0.5),
			ContextWindow:    getEnvAsInt("CONTEXT_WINDOW", 50),
		},
		Training: TrainingConfig{
			Epochs:       getEnvAsInt("TRAIN_EPOCHS", 400),
			LearningRate: getEnvAsFloat64("TRAIN_LEARNING_RATE", 0.1),
			CSVSeedPath:  getEnv("CSV_SEED_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks settings needed by the long-running binaries. The library
// packages take their knobs explicitly and do not read the environment.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrMalformedInput)
	}
	if c.Engine.AssignConfidence <= 0 || c.Engine.AssignConfidence >= 1 {
		return NewAppError("CONFIG_ERROR", "ASSIGN_CONFIDENCE must be in (0,1)", ErrMalformedInput)
	}
	return nil
}
