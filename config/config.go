package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	ServerPort      int           `json:"server_port" yaml:"server_port"`
	LogLevel        string        `json:"log_level" yaml:"log_level"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	Version         string        `json:"version" yaml:"version"`

	PostsURL     string        `json:"posts_url" yaml:"posts_url"`
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`

	StorageBackend string `json:"storage_backend" yaml:"storage_backend"` // memory or redis
	StorageKey     string `json:"storage_key" yaml:"storage_key"`         // key the posts are cached under
	RedisURL       string `json:"redis_url" yaml:"redis_url"`
	RedisPrefix    string `json:"redis_prefix" yaml:"redis_prefix"`
}

func defaults() *Config {
	return &Config{
		ServerPort:      8080,
		LogLevel:        "INFO",
		ShutdownTimeout: 15 * time.Second,
		Version:         "1.0.0",
		PostsURL:        "http://jsonplaceholder.typicode.com/posts/",
		FetchTimeout:    10 * time.Second,
		StorageBackend:  StorageMemory,
		StorageKey:      "initialState",
		RedisURL:        "redis://localhost:6379",
		RedisPrefix:     "task-middleware:",
	}
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile layers defaults, then the YAML file at path (when path is
// not empty), then environment variables.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnvInt("PORT", c.ServerPort)
	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.Version = getEnvString("VERSION", c.Version)
	c.PostsURL = getEnvString("POSTS_URL", c.PostsURL)
	c.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", c.FetchTimeout)
	c.StorageBackend = getEnvString("STORAGE_BACKEND", c.StorageBackend)
	c.StorageKey = getEnvString("STORAGE_KEY", c.StorageKey)
	c.RedisURL = getEnvString("REDIS_URL", c.RedisURL)
	c.RedisPrefix = getEnvString("REDIS_PREFIX", c.RedisPrefix)
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// validate performs basic validation of the configuration
func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, or ERROR", c.LogLevel)
	}
	c.LogLevel = upperLevel

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	u, err := url.Parse(c.PostsURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid posts URL '%s': must be an absolute http(s) URL", c.PostsURL)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout %v: must be positive", c.FetchTimeout)
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage key cannot be empty")
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis URL cannot be empty when the redis storage backend is selected")
		}
	default:
		return fmt.Errorf("invalid storage backend '%s': must be memory or redis", c.StorageBackend)
	}

	return nil
}
