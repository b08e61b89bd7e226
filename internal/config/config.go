package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the service, loaded from environment variables.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Telemetry  TelemetryConfig
	LogLevel   string
	RolloutKey string
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type DBConfig struct {
	Storage      string // memory or postgres
	URL          string
	MaxOpenConns int
	Seed         bool
}

type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", "0.0.0.0"),
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		DB: DBConfig{
			Storage:      strings.ToLower(getEnv("STORAGE", StorageMemory)),
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			Seed:         getEnvAsBool("DB_SEED", true),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTPublicKeyFile: os.Getenv("JWT_PUBLIC_KEY_FILE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "commerce-api"),
		},
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		RolloutKey: os.Getenv("ROLLOUT_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for missing or conflicting values.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.DB.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE %q (must be memory or postgres)", c.DB.Storage)
	}

	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyFile == "" {
		return fmt.Errorf("one of JWT_SECRET or JWT_PUBLIC_KEY_FILE must be set")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
