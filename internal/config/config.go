package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Client     ClientConfig
	TokenStore TokenStoreConfig
	Sample     SampleConfig
	S3         S3Config
	Telemetry  TelemetryConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the mock API's token signing configuration.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	SeedPassword  string // password of every seeded sample account
}

// ClientConfig holds API client configuration.
type ClientConfig struct {
	BaseURL           string
	TimeoutSeconds    int
	RequestsPerSecond float64
	Burst             int
}

// TokenStoreConfig selects where the access token is persisted.
type TokenStoreConfig struct {
	Backend       string // memory, file or redis
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTLHours int
}

// SampleConfig locates the sample catalogue fixture.
type SampleConfig struct {
	Path string // empty uses the built-in catalogue
}

// S3Config holds AWS S3 configuration for catalogue fixtures.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// TelemetryConfig holds OpenTelemetry trace export settings.
type TelemetryConfig struct {
	OTLPEndpoint string // host:port of an OTLP gRPC collector; empty disables export
	ServiceName  string
}

// Load loads configuration from a .env file, if present, and environment
// variables. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8000),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 24*7),
			SeedPassword:  getEnv("SEED_PASSWORD", "password123"),
		},
		Client: ClientConfig{
			BaseURL:           getEnv("API_BASE_URL", "http://localhost:8000/api"),
			TimeoutSeconds:    getEnvAsInt("API_TIMEOUT_SECONDS", 30),
			RequestsPerSecond: getEnvAsFloat("API_REQUESTS_PER_SECOND", 0),
			Burst:             getEnvAsInt("API_BURST", 1),
		},
		TokenStore: TokenStoreConfig{
			Backend:       getEnv("TOKEN_STORE", StoreFile),
			Path:          getEnv("TOKEN_STORE_PATH", defaultTokenPath()),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "homebite:"),
			RedisTTLHours: getEnvAsInt("REDIS_TTL_HOURS", 0),
		},
		Sample: SampleConfig{
			Path: getEnv("SAMPLE_CATALOG_PATH", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "homebite"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Auth.TokenTTLHours < 1 {
		return fmt.Errorf("token TTL must be at least 1 hour")
	}

	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.Client.BaseURL)
	}

	if c.Client.TimeoutSeconds < 1 {
		return fmt.Errorf("API timeout must be at least 1 second")
	}

	if c.Client.RequestsPerSecond < 0 {
		return fmt.Errorf("API requests per second cannot be negative")
	}

	switch c.TokenStore.Backend {
	case StoreMemory:
	case StoreFile:
		if c.TokenStore.Path == "" {
			return fmt.Errorf("token store path is required for the file backend")
		}
	case StoreRedis:
		if c.TokenStore.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
		if c.TokenStore.RedisTTLHours < 0 {
			return fmt.Errorf("redis TTL cannot be negative")
		}
	default:
		return fmt.Errorf("invalid token store: %s (must be memory, file, or redis)", c.TokenStore.Backend)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Telemetry.OTLPEndpoint != "" && c.Telemetry.ServiceName == "" {
		return fmt.Errorf("service name is required when trace export is enabled")
	}

	return nil
}

// ValidateServer additionally checks what the API server needs.
func (c *Config) ValidateServer() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("JWT secret must be at least 16 characters")
	}
	if c.Auth.SeedPassword == "" {
		return fmt.Errorf("seed password is required")
	}
	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TokenTTL returns the access token lifetime.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Timeout returns the per-request timeout.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisTTL returns the token expiry in Redis; zero keeps it indefinitely.
func (c *TokenStoreConfig) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLHours) * time.Hour
}

// defaultTokenPath is ~/.homebite/tokens.json, or a relative path when the
// home directory is unknown.
func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".homebite/tokens.json"
	}
	return filepath.Join(home, ".homebite", "tokens.json")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
