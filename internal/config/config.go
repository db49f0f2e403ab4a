package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for oppsim.
type Config struct {
	LLM LLMConfig
}

// LLMConfig controls the chat-completion provider used for comparisons.
type LLMConfig struct {
	BaseURL     string        // defaults to https://api.openai.com/v1
	Model       string        // e.g. "gpt-4o-mini"
	APIKey      string        // falls back to OPENAI_API_KEY; never required
	Temperature float64       // sampling temperature, 0-2
	Timeout     time.Duration // per-request timeout, 0 disables
}

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.2
	defaultTimeout     = 60 * time.Second

	// APIKeyEnv is the environment variable holding the provider credential.
	APIKeyEnv = "OPENAI_API_KEY"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	LLM rawLLMConfig `yaml:"llm"`
}

type rawLLMConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Temperature *float64 `yaml:"temperature"`
	Timeout     string   `yaml:"timeout"`
}

// Default returns the built-in configuration, reading the API key from the
// environment.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:     defaultBaseURL,
			Model:       defaultModel,
			APIKey:      os.Getenv(APIKeyEnv),
			Temperature: defaultTemperature,
			Timeout:     defaultTimeout,
		},
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.LLM.BaseURL != "" {
		cfg.LLM.BaseURL = raw.LLM.BaseURL
	}
	if raw.LLM.Model != "" {
		cfg.LLM.Model = raw.LLM.Model
	}
	if raw.LLM.APIKey != "" {
		cfg.LLM.APIKey = raw.LLM.APIKey
	}
	if raw.LLM.Temperature != nil {
		cfg.LLM.Temperature = *raw.LLM.Temperature
	}
	if raw.LLM.Timeout != "" {
		cfg.LLM.Timeout, err = time.ParseDuration(raw.LLM.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse llm.timeout %q: %w", raw.LLM.Timeout, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the config source.
// Priority: explicit path > envPath (OPPSIM_CONFIG) > defaultPath.
// Only a missing defaultPath is tolerated; it yields Default().
func Resolve(explicit, envPath, defaultPath string) (*Config, error) {
	switch {
	case explicit != "":
		return Load(explicit)
	case envPath != "":
		return Load(envPath)
	}

	cfg, err := Load(defaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges. A missing API key is deliberately not an
// error: the provider call fails instead and the comparison falls back.
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url must not be empty")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative, got %v", c.LLM.Timeout)
	}
	return nil
}
