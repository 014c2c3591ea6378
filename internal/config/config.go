// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Gemini   GeminiConfig   `toml:"gemini"`
	JWT      JWTConfig      `toml:"jwt"`
	Limits   LimitsConfig   `toml:"limits"`

	JWTSecret string `toml:"-"` // Runtime secret (from env, flag, or file)
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the SQLite database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// GeminiConfig holds settings for the generative-language upstream.
type GeminiConfig struct {
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// JWTConfig holds settings for token generation.
type JWTConfig struct {
	AccessDurationMin    int    `toml:"access_duration_min"`
	RefreshDurationHours int    `toml:"refresh_duration_hours"`
	Secret               string `toml:"secret"` // Persisted secret
}

// LimitsConfig holds the documented request limits.
type LimitsConfig struct {
	MaxEntryChars      int `toml:"max_entry_chars"`
	MaxBatchEntries    int `toml:"max_batch_entries"`
	MaxImportRecords   int `toml:"max_import_records"`
	SearchDefaultLimit int `toml:"search_default_limit"`
	SearchMaxLimit     int `toml:"search_max_limit"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated JWT secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ApplyDefaults fills in every unset value with the documented default.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "mindbe.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.TimeoutSec == 0 {
		c.Gemini.TimeoutSec = 60
	}
	if c.JWT.AccessDurationMin == 0 {
		c.JWT.AccessDurationMin = 15
	}
	if c.JWT.RefreshDurationHours == 0 {
		c.JWT.RefreshDurationHours = 24 * 7
	}
	if c.Limits.MaxEntryChars == 0 {
		c.Limits.MaxEntryChars = 5000
	}
	if c.Limits.MaxBatchEntries == 0 {
		c.Limits.MaxBatchEntries = 10
	}
	if c.Limits.MaxImportRecords == 0 {
		c.Limits.MaxImportRecords = 100
	}
	if c.Limits.SearchDefaultLimit == 0 {
		c.Limits.SearchDefaultLimit = 50
	}
	if c.Limits.SearchMaxLimit == 0 {
		c.Limits.SearchMaxLimit = 100
	}
}

// Validate checks invariants between limits after defaults were applied.
func (c *Config) Validate() error {
	if c.Limits.SearchDefaultLimit > c.Limits.SearchMaxLimit {
		return fmt.Errorf("search_default_limit (%d) exceeds search_max_limit (%d)",
			c.Limits.SearchDefaultLimit, c.Limits.SearchMaxLimit)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}
