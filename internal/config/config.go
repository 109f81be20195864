// Package config provides YAML-based configuration for the server,
// the Gemini API client, and local storage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bind_address"`
	EnableCORS   bool   `yaml:"enable_cors"`
	AllowOrigins string `yaml:"allow_origins"`
	ReadTimeout  int    `yaml:"read_timeout_secs"`
	WriteTimeout int    `yaml:"write_timeout_secs"`
	IdleTimeout  int    `yaml:"idle_timeout_secs"`
	BodyLimit    string `yaml:"body_limit"`
}

// GeminiConfig contains Gemini API client settings. The API key itself is
// never stored in the config file; it comes from the environment variable
// named by APIKeyEnv.
type GeminiConfig struct {
	BaseURL          string `yaml:"base_url"`
	UploadBaseURL    string `yaml:"upload_base_url"`
	Model            string `yaml:"model"`
	APIKeyEnv        string `yaml:"api_key_env"`
	RequestTimeout   int    `yaml:"request_timeout_secs"`
	PollIntervalSecs int    `yaml:"poll_interval_secs"`
	MaxPollAttempts  int    `yaml:"max_poll_attempts"`
}

// StorageConfig contains local data directory settings.
type StorageConfig struct {
	DataDirectory string `yaml:"data_directory"`
	HistoryFile   string `yaml:"history_file"`
}

// SecurityConfig contains operational safety switches.
type SecurityConfig struct {
	AllowStoreDeletion    bool `yaml:"allow_store_deletion"`
	AllowDocumentDeletion bool `yaml:"allow_document_deletion"`
}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`
}

// Load reads a config from path. A missing file returns defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BindAddress == "" {
		cfg.Server.BindAddress = "127.0.0.1"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 300
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 300
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120
	}
	if cfg.Server.BodyLimit == "" {
		cfg.Server.BodyLimit = "100M"
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Gemini.UploadBaseURL == "" {
		cfg.Gemini.UploadBaseURL = "https://generativelanguage.googleapis.com/upload/v1beta"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Gemini.APIKeyEnv == "" {
		cfg.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Gemini.RequestTimeout == 0 {
		cfg.Gemini.RequestTimeout = 60
	}
	if cfg.Gemini.PollIntervalSecs == 0 {
		cfg.Gemini.PollIntervalSecs = 5
	}
	if cfg.Gemini.MaxPollAttempts == 0 {
		cfg.Gemini.MaxPollAttempts = 60
	}
	if cfg.Storage.DataDirectory == "" {
		cfg.Storage.DataDirectory = "./data"
	}
	if cfg.Storage.HistoryFile == "" {
		cfg.Storage.HistoryFile = "history.duckdb"
	}
}

// APIKey resolves the Gemini API key from the environment.
func (c *Config) APIKey() string {
	return os.Getenv(c.Gemini.APIKeyEnv)
}

// RequestTimeout returns the per-request HTTP deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Gemini.RequestTimeout) * time.Second
}

// PollInterval returns the indexing poll cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Gemini.PollIntervalSecs) * time.Second
}

// GetServerAddr returns the host:port to listen on.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// HistoryPath returns the absolute-ish path of the history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Storage.DataDirectory, c.Storage.HistoryFile)
}

// EnsureDirectories creates the data directory tree.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Storage.DataDirectory, 0755)
}
