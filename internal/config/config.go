package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML/JSON keys to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port    int    `mapstructure:"port"`     // HTTP server port (default: 8080)
		BaseURL string `mapstructure:"base_url"` // Base URL for generating short links
	} `mapstructure:"server"`

	// Database configuration section for SQLite settings
	Database struct {
		Name string `mapstructure:"name"` // SQLite database file name
	} `mapstructure:"database"`

	// Auth configuration for token issuance and password hashing
	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`      // HMAC secret for signing bearer tokens
		TokenTTLHours int    `mapstructure:"token_ttl_hours"` // Token lifetime in hours
		BcryptCost    int    `mapstructure:"bcrypt_cost"`     // Work factor for password hashing
	} `mapstructure:"auth"`

	// OpenAI configuration for the chat assistant and embedding ingestion
	OpenAI struct {
		APIKey         string  `mapstructure:"api_key"`         // API key, usually set via OPENAI_API_KEY
		ChatModel      string  `mapstructure:"chat_model"`      // Chat completion model
		EmbeddingModel string  `mapstructure:"embedding_model"` // Embedding model; all stored vectors share its dimension
		Temperature    float32 `mapstructure:"temperature"`     // Sampling temperature for chat replies
	} `mapstructure:"openai"`

	// Monitor configuration for destination URL health checking
	Monitor struct {
		IntervalMinutes int `mapstructure:"interval_minutes"` // Interval in minutes between URL health checks
	} `mapstructure:"monitor"`

	// Logging configuration for the zap logger
	Logging struct {
		Level  string `mapstructure:"level"`  // debug, info, warn, error
		Format string `mapstructure:"format"` // json or console
	} `mapstructure:"logging"`
}

// LoadConfig loads the application configuration using Viper.
// It supports environment variable overrides and YAML configuration files.
// Returns a populated Config struct or an error if configuration loading fails.
func LoadConfig() (*Config, error) {
	// Enable automatic environment variable binding so any key can be
	// overridden, e.g. "auth.jwt_secret" becomes AUTH_JWT_SECRET.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults used when no config file is found or specific keys are missing.
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("database.name", "smartlink.db")
	viper.SetDefault("auth.jwt_secret", "change-me")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.chat_model", "gpt-4o-mini")
	viper.SetDefault("openai.embedding_model", "text-embedding-3-small")
	viper.SetDefault("openai.temperature", 0.7)
	viper.SetDefault("monitor.interval_minutes", 5)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Any other error (permissions, malformed YAML, etc.) is fatal.
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing file is fine, defaults and environment take over.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
