// Package config loads run settings from a YAML file, a .env file and
// FOLDER_SUMMARY_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"llm"`
	Pipeline struct {
		Workers        int `yaml:"workers"`
		Retries        int `yaml:"retries"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"pipeline"`
	Output  string `yaml:"output"`
	Cache   string `yaml:"cache"`
	NoCache bool   `yaml:"no_cache"`
}

// Default returns the configuration used when no file and no overrides are
// present.
func Default() *Config {
	cfg := &Config{}
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "mannix/gemma2-2b"
	cfg.Pipeline.Workers = 4
	cfg.Pipeline.Retries = 3
	cfg.Pipeline.TimeoutSeconds = 90
	cfg.Output = "summary.md"
	cfg.Cache = ".folder-summary-cache.json"
	return cfg
}

// LoadConfig builds the effective configuration. A missing config file is
// fine when path is empty; an explicit path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	// .env first so the env overrides below can see its values.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOLDER_SUMMARY_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("FOLDER_SUMMARY_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("FOLDER_SUMMARY_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("FOLDER_SUMMARY_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("FOLDER_SUMMARY_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("FOLDER_SUMMARY_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Pipeline.Workers = n
		}
	}
	if v := os.Getenv("FOLDER_SUMMARY_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Pipeline.Retries = n
		}
	}
}

// Timeout returns the per-request deadline as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Pipeline.TimeoutSeconds) * time.Second
}
