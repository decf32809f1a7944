// Package config loads and validates tool configuration. Configuration is a
// plain value handed into constructors; nothing reads it through ambient
// state.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Environment overrides, applied on top of the config file.
const (
	EnvAPIKey  = "AUTOMSG_API_KEY"
	EnvBaseURL = "AUTOMSG_BASE_URL"
	EnvModel   = "AUTOMSG_MODEL"
)

// ErrInvalid indicates configuration that cannot drive a generation call.
var ErrInvalid = errors.New("invalid configuration")

// Provider identifies a text-generation provider. The set is closed; each
// variant carries its endpoint and model defaults as data, resolved at
// configuration-load time.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderKimi      Provider = "kimi"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

type providerDefaults struct {
	BaseURL string
	Model   string
}

var providerTable = map[Provider]providerDefaults{
	ProviderOpenAI:    {BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
	ProviderDeepSeek:  {BaseURL: "https://api.deepseek.com/v1", Model: "deepseek-chat"},
	ProviderKimi:      {BaseURL: "https://api.moonshot.cn/v1", Model: "moonshot-v1-8k"},
	ProviderAnthropic: {BaseURL: "https://api.anthropic.com/v1", Model: "claude-3-5-haiku-latest"},
	ProviderOllama:    {BaseURL: "http://localhost:11434/v1", Model: "llama3.1"},
}

// ParseProvider validates a provider name against the closed set.
func ParseProvider(name string) (Provider, error) {
	p := Provider(name)
	if _, ok := providerTable[p]; !ok {
		return "", fmt.Errorf("%w: unknown provider %q", ErrInvalid, name)
	}
	return p, nil
}

// LLMConfig holds the settings for the generation endpoint.
type LLMConfig struct {
	Provider Provider `json:"provider"`
	BaseURL  string   `json:"baseUrl"`
	APIKey   string   `json:"apiKey"`
	Model    string   `json:"model"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// Config is the root configuration structure.
type Config struct {
	LLM      LLMConfig    `json:"llm"`
	Language string       `json:"language"` // locale tag for generated text
	Prompt   string       `json:"prompt"`   // default extra instruction
	Filters  FilterConfig `json:"filters"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
		},
		Language: "en-US",
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults and
// applying environment overrides. Provider endpoint/model defaults fill any
// fields the file leaves empty.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, p := range candidatePaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	applyProviderDefaults(cfg)

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the preferred config file location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".automsg.json")
	}
	return ".automsg.json"
}

func candidatePaths() []string {
	candidates := []string{".automsg.json"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".automsg.json"))
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		candidates = append(candidates, filepath.Join(envHome, ".automsg.json"))
	}
	return candidates
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.LLM.Model = v
	}
}

func applyProviderDefaults(cfg *Config) {
	defaults, ok := providerTable[cfg.LLM.Provider]
	if !ok {
		return
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = defaults.BaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaults.Model
	}
}

// Set updates a configuration field addressed by a dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "llm.provider":
		p, err := ParseProvider(value)
		if err != nil {
			return err
		}
		c.LLM.Provider = p
	case "llm.base_url":
		c.LLM.BaseURL = value
	case "llm.api_key":
		c.LLM.APIKey = value
	case "llm.model":
		c.LLM.Model = value
	case "language":
		c.Language = value
	case "prompt":
		c.Prompt = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, key)
	}
	return nil
}

// Validate checks that the configuration can drive a generation call. It is
// called once at load time; call sites never re-validate.
func (c *Config) Validate() error {
	if _, ok := providerTable[c.LLM.Provider]; !ok {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, c.LLM.Provider)
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("%w: base URL must not be empty", ErrInvalid)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("%w: model must not be empty", ErrInvalid)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: API key must not be empty (set %s or llm.api_key)", ErrInvalid, EnvAPIKey)
	}
	return nil
}
