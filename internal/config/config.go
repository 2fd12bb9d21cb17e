// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Storage Configuration
	StorageBackend string `mapstructure:"STORAGE_BACKEND"` // memory, badger or redis
	DataDir        string `mapstructure:"DATA_DIR"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Session tokens
	SessionTokenSecret string        `mapstructure:"SESSION_TOKEN_SECRET"`
	SessionTokenTTL    time.Duration `mapstructure:"SESSION_TOKEN_TTL_HOURS"`

	// Application Specific Configuration
	AuthSimulatedLatency time.Duration `mapstructure:"AUTH_SIMULATED_LATENCY_MS"`
	ReplySimulatedDelay  time.Duration `mapstructure:"REPLY_SIMULATED_DELAY_MS"`
	VerificationTokenTTL time.Duration `mapstructure:"VERIFICATION_TOKEN_TTL_HOURS"`
	DefaultLanguage      string        `mapstructure:"DEFAULT_LANGUAGE"`

	// Cron Jobs
	TokenSweepJobSchedule string `mapstructure:"TOKEN_SWEEP_JOB_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("STORAGE_BACKEND", "badger")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_TOKEN_SECRET", "")
	v.SetDefault("SESSION_TOKEN_TTL_HOURS", 24)

	v.SetDefault("AUTH_SIMULATED_LATENCY_MS", 1000)
	v.SetDefault("REPLY_SIMULATED_DELAY_MS", 1500)
	v.SetDefault("VERIFICATION_TOKEN_TTL_HOURS", 24)
	v.SetDefault("DEFAULT_LANGUAGE", "en")

	v.SetDefault("TOKEN_SWEEP_JOB_SCHEDULE", "@hourly")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.SessionTokenTTL = time.Duration(v.GetInt("SESSION_TOKEN_TTL_HOURS")) * time.Hour
	cfg.AuthSimulatedLatency = time.Duration(v.GetInt("AUTH_SIMULATED_LATENCY_MS")) * time.Millisecond
	cfg.ReplySimulatedDelay = time.Duration(v.GetInt("REPLY_SIMULATED_DELAY_MS")) * time.Millisecond
	cfg.VerificationTokenTTL = time.Duration(v.GetInt("VERIFICATION_TOKEN_TTL_HOURS")) * time.Hour

	// Basic validation for critical configs
	backend := strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	switch backend {
	case "memory", "badger", "redis":
		cfg.StorageBackend = backend
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be one of memory, badger, redis; got %q", cfg.StorageBackend)
	}
	if backend == "badger" && strings.TrimSpace(cfg.DataDir) == "" {
		return nil, fmt.Errorf("DATA_DIR is required when STORAGE_BACKEND is badger")
	}

	return &cfg, nil
}
