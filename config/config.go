package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Everything has a working default so
// the binary runs with no config file at all.
type Config struct {
	Server struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		ReadTimeoutSecs    int    `yaml:"readTimeoutSecs"`
		WriteTimeoutSecs   int    `yaml:"writeTimeoutSecs"`
		ShutdownTimeoutSecs int   `yaml:"shutdownTimeoutSecs"`
		MaxBodyBytes       int64  `yaml:"maxBodyBytes"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Server.ReadTimeoutSecs = 30
	cfg.Server.WriteTimeoutSecs = 60
	cfg.Server.ShutdownTimeoutSecs = 10
	cfg.Server.MaxBodyBytes = 16 << 20
	cfg.CORS.AllowedOrigins = []string{"*"}
	return &cfg
}

// Load reads the YAML config at path, layered over defaults. A .env file
// in the working directory is loaded first (missing is fine), and the
// CONFIG_PATH variable overrides path when set. An empty resolved path
// returns the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown window.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSecs) * time.Second
}
