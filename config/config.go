// Package config holds the process-wide configuration, constructed once at
// startup and passed into the layers that need it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Engine selects and parameterizes the workflow engine collaborator.
type Engine struct {
	// Provider is one of "openai", "deepseek", "remote", "mock".
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
	// URL is the endpoint of a remote workflow engine (provider "remote").
	URL string `json:"url,omitempty"`
}

// Config is the full service configuration as read from the JSON file.
type Config struct {
	ServerAddr         string   `json:"server_addr,omitempty"`
	StaticDir          string   `json:"static_dir,omitempty"`
	BlogDir            string   `json:"blog_dir,omitempty"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins,omitempty"`
	Engine             *Engine  `json:"engine,omitempty"`
}

// Default returns the configuration used when no file is given: serve on
// :8000, articles in the working directory, frontend/ as the landing page
// source if it exists, CORS open.
func Default() Config {
	return Config{
		ServerAddr:         ":8000",
		StaticDir:          "frontend",
		BlogDir:            ".",
		CORSAllowedOrigins: []string{"*"},
	}
}

// Load reads JSON config from disk and fills in defaults for absent fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8000"
	}
	if c.BlogDir == "" {
		c.BlogDir = "."
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}
}
