package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL   = "http://localhost:8081"
	defaultLimit     = 10
	defaultProjectID = "MCP Server Tests"

	defaultHealthTimeoutSeconds = 10
	defaultQueryTimeoutSeconds  = 30
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Query  QueryConfig  `yaml:"query"`
}

type ServerConfig struct {
	BaseURL              string `yaml:"base_url"`
	HealthTimeoutSeconds int    `yaml:"health_timeout_seconds"`
	QueryTimeoutSeconds  int    `yaml:"query_timeout_seconds"`
}

type QueryConfig struct {
	Limit     int    `yaml:"limit"`
	ProjectID string `yaml:"project_id"`
}

func (s ServerConfig) HealthTimeout() time.Duration {
	return time.Duration(s.HealthTimeoutSeconds) * time.Second
}

func (s ServerConfig) QueryTimeout() time.Duration {
	return time.Duration(s.QueryTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration targeting a local server.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:              defaultBaseURL,
			HealthTimeoutSeconds: defaultHealthTimeoutSeconds,
			QueryTimeoutSeconds:  defaultQueryTimeoutSeconds,
		},
		Query: QueryConfig{
			Limit:     defaultLimit,
			ProjectID: defaultProjectID,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// Environment variables sit between the config file and command-line flags.
func (c *Config) applyEnv() {
	if v := os.Getenv("FLAKEPROBE_SERVER"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("FLAKEPROBE_PROJECT"); v != "" {
		c.Query.ProjectID = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server base_url: %q", c.Server.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported base_url scheme: %s", u.Scheme)
	}

	if c.Server.HealthTimeoutSeconds <= 0 {
		return fmt.Errorf("health_timeout_seconds must be positive, got %d", c.Server.HealthTimeoutSeconds)
	}
	if c.Server.QueryTimeoutSeconds <= 0 {
		return fmt.Errorf("query_timeout_seconds must be positive, got %d", c.Server.QueryTimeoutSeconds)
	}

	if c.Query.Limit <= 0 {
		return fmt.Errorf("query limit must be positive, got %d", c.Query.Limit)
	}
	if c.Query.ProjectID == "" {
		return fmt.Errorf("query project_id must not be empty")
	}

	return nil
}
