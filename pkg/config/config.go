package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the profile analytics service
type Config struct {
	// Instagram client settings
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// HTTP server settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Database settings
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Content collection caps
	Limits LimitsConfig `yaml:"limits" json:"limits"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds upstream-client configuration
type InstagramConfig struct {
	SessionID      string        `yaml:"session_id" json:"session_id"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	AppID          string        `yaml:"app_id" json:"app_id"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	// Backend selects the store implementation: "mongo" or "memory"
	Backend  string `yaml:"backend" json:"backend"`
	MongoURI string `yaml:"mongo_uri" json:"mongo_uri"`
	Name     string `yaml:"name" json:"name"`
}

// LimitsConfig caps how many items of each kind are kept per username
type LimitsConfig struct {
	PostsLimit int `yaml:"posts_limit" json:"posts_limit"`
	ReelsLimit int `yaml:"reels_limit" json:"reels_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AppID:          "936619743392459",
			RequestTimeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Backend:  "mongo",
			MongoURI: "mongodb://localhost:27017",
			Name:     "primaspot",
		},
		Limits: LimitsConfig{
			PostsLimit: 15,
			ReelsLimit: 7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file (if
// any), then environment variables. A .env file in the working directory is
// honored via godotenv.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".primaspot.yaml",
		".primaspot.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "primaspot", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "primaspot", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if sessionID := os.Getenv("INSTAGRAM_SESSIONID"); sessionID != "" {
		c.Instagram.SessionID = sessionID
	}
	if userAgent := os.Getenv("PRIMASPOT_USER_AGENT"); userAgent != "" {
		c.Instagram.UserAgent = userAgent
	}
	if appID := os.Getenv("PRIMASPOT_APP_ID"); appID != "" {
		c.Instagram.AppID = appID
	}

	if port := os.Getenv("PRIMASPOT_PORT"); port != "" {
		var val int
		fmt.Sscanf(port, "%d", &val)
		if val > 0 {
			c.Server.Port = val
		}
	}

	if backend := os.Getenv("PRIMASPOT_DB_BACKEND"); backend != "" {
		c.Database.Backend = strings.ToLower(backend)
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.Database.MongoURI = uri
	}
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		c.Database.Name = name
	}

	if posts := os.Getenv("PRIMASPOT_POSTS_LIMIT"); posts != "" {
		var val int
		fmt.Sscanf(posts, "%d", &val)
		if val > 0 {
			c.Limits.PostsLimit = val
		}
	}
	if reels := os.Getenv("PRIMASPOT_REELS_LIMIT"); reels != "" {
		var val int
		fmt.Sscanf(reels, "%d", &val)
		if val > 0 {
			c.Limits.ReelsLimit = val
		}
	}

	if logLevel := os.Getenv("PRIMASPOT_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// Address returns the server address in host:port format
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, errors.New("server port must be between 1 and 65535"))
	}

	switch c.Database.Backend {
	case "mongo", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown database backend: %s", c.Database.Backend))
	}
	if c.Database.Backend == "mongo" && c.Database.MongoURI == "" {
		errs = append(errs, errors.New("mongo URI is required for the mongo backend"))
	}

	if c.Limits.PostsLimit <= 0 {
		errs = append(errs, errors.New("posts limit must be positive"))
	}
	if c.Limits.ReelsLimit <= 0 {
		errs = append(errs, errors.New("reels limit must be positive"))
	}

	if c.Instagram.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, err := range errs {
			messages[i] = err.Error()
		}
		return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
	}

	return nil
}
