// Package config loads cadet configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all cadet configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AIConfig configures the model-backed parsing path.
type AIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// ParseTimeout returns the configured timeout as a duration, or the
// fallback when unset or invalid.
func (a AIConfig) ParseTimeout(fallback time.Duration) time.Duration {
	if a.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	OutputsDir   string `yaml:"outputs_dir"`
	EventLogPath string `yaml:"event_log_path"`
}

// JobsConfig tunes background build jobs.
type JobsConfig struct {
	ProgressSteps int    `yaml:"progress_steps"`
	StepDelay     string `yaml:"step_delay"`
}

// ParseStepDelay returns the configured step delay, or the fallback
// when unset or invalid.
func (j JobsConfig) ParseStepDelay(fallback time.Duration) time.Duration {
	if j.StepDelay == "" {
		return fallback
	}
	d, err := time.ParseDuration(j.StepDelay)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{"*"},
		},
		AI: AIConfig{
			Enabled: false,
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: "20s",
		},
		Storage: StorageConfig{
			DatabasePath: "data/cadet.db",
			OutputsDir:   "outputs",
			EventLogPath: "data/jobs.log",
		},
		Jobs: JobsConfig{
			ProgressSteps: 20,
			StepDelay:     "150ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults apply, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("CADET_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("CADET_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			c.Server.Port = n
		}
	}
	if origins := os.Getenv("CADET_CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		c.Server.CORSOrigins = c.Server.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, p)
			}
		}
	}

	if v := os.Getenv("CADET_USE_AI"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AI.Enabled = b
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.AI.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		c.AI.BaseURL = url
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		c.AI.Model = model
	}
	if timeout := os.Getenv("OPENAI_TIMEOUT"); timeout != "" {
		c.AI.Timeout = timeout
	}

	if path := os.Getenv("CADET_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
	if dir := os.Getenv("CADET_OUTPUTS_DIR"); dir != "" {
		c.Storage.OutputsDir = dir
	}

	if level := os.Getenv("CADET_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}
