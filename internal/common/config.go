// Package common provides shared utilities for Ledgerline
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Ledgerline
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	DataDir string `toml:"data_dir"` // Scenario JSON files + messages.json
}

// ClientsConfig holds LLM client configuration.
type ClientsConfig struct {
	Provider string       `toml:"provider"` // "openai" (default) or "gemini"
	OpenAI   OpenAIConfig `toml:"openai"`
	Gemini   GeminiConfig `toml:"gemini"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"` // Override for proxies / compatible endpoints
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // Requests per second
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *OpenAIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			DataDir: "data/scenarios",
		},
		Clients: ClientsConfig{
			Provider: "openai",
			OpenAI: OpenAIConfig{
				Model:     "gpt-4o-mini",
				RateLimit: 2,
				Timeout:   "60s",
			},
			Gemini: GeminiConfig{
				Model:     "gemini-2.0-flash",
				RateLimit: 2,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LEDGERLINE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("LEDGERLINE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("LEDGERLINE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("LEDGERLINE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if dir := os.Getenv("LEDGERLINE_DATA_DIR"); dir != "" {
		config.Storage.DataDir = dir
	}

	if provider := os.Getenv("LEDGERLINE_LLM_PROVIDER"); provider != "" {
		config.Clients.Provider = strings.ToLower(provider)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.Clients.OpenAI.APIKey = key
	}
	if model := os.Getenv("LEDGERLINE_OPENAI_MODEL"); model != "" {
		config.Clients.OpenAI.Model = model
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		config.Clients.OpenAI.BaseURL = base
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
