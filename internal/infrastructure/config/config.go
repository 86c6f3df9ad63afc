// Package config loads service settings from a YAML file, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the help desk service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Chat      ChatConfig      `yaml:"chat"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
	Mode string `yaml:"mode" validate:"oneof=debug release test"`
}

// KnowledgeConfig selects the knowledge source and hot reload.
type KnowledgeConfig struct {
	Path  string `yaml:"path"` // empty = built-in knowledge base
	Watch bool   `yaml:"watch"`
}

// ChatConfig tunes the streaming chat.
type ChatConfig struct {
	// TypingDelay is the pause between streamed words. Cosmetic only.
	TypingDelay time.Duration `yaml:"typing_delay" validate:"gte=0,lte=5s"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

var validate = validator.New()

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Chat: ChatConfig{
			TypingDelay: 30 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load builds the configuration. Priority, lowest first: defaults, the YAML
// file at path (or CONFIG_PATH, or config.yaml), .env, process environment.
// A missing config or .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv overrides file settings with HELPDESK_* variables.
func applyEnv(cfg *Config) error {
	if addr := os.Getenv("HELPDESK_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if mode := os.Getenv("HELPDESK_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if path := os.Getenv("HELPDESK_KNOWLEDGE_PATH"); path != "" {
		cfg.Knowledge.Path = path
	}
	if v := os.Getenv("HELPDESK_WATCH"); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HELPDESK_WATCH: %w", err)
		}
		cfg.Knowledge.Watch = watch
	}
	if v := os.Getenv("HELPDESK_TYPING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HELPDESK_TYPING_DELAY: %w", err)
		}
		cfg.Chat.TypingDelay = d
	}
	if v := os.Getenv("HELPDESK_METRICS"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HELPDESK_METRICS: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}
