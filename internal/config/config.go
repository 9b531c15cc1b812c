// Package config loads service configuration from an optional YAML file,
// then environment overrides, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-uispec/pkg/fallback"
	"github.com/goliatone/go-uispec/pkg/generation"
)

const (
	DefaultListen   = ":8080"
	DefaultRenderer = "vanilla"

	envPrefix = "UISPEC_"
)

// Config is the service configuration.
type Config struct {
	Listen      string              `yaml:"listen"`
	Provider    generation.Provider `yaml:"provider"`
	Model       string              `yaml:"model"`
	BaseURL     string              `yaml:"base_url"`
	APIKey      string              `yaml:"api_key"`
	Temperature float64             `yaml:"temperature"`
	Timeout     time.Duration       `yaml:"timeout"`
	Catalog     string              `yaml:"catalog"`
	// DefaultAction is the cta action token. Nil uses fallback.DefaultAction;
	// an empty string leaves the action absent.
	DefaultAction *string `yaml:"default_action"`
	Renderer      string  `yaml:"renderer"`
	// StaticCandidate is a candidate file answered by the static provider.
	StaticCandidate string `yaml:"static_candidate"`
}

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Load reads path (when non-empty) and applies process environment
// overrides.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment.
func LoadWithEnv(path string, lookup LookupEnv) (Config, error) {
	var cfg Config
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults(lookup)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup LookupEnv) error {
	str := func(name string, target *string) {
		if value, ok := lookup(envPrefix + name); ok {
			*target = strings.TrimSpace(value)
		}
	}
	str("LISTEN", &c.Listen)
	str("MODEL", &c.Model)
	str("BASE_URL", &c.BaseURL)
	str("API_KEY", &c.APIKey)
	str("CATALOG", &c.Catalog)
	str("RENDERER", &c.Renderer)
	str("STATIC_CANDIDATE", &c.StaticCandidate)

	if value, ok := lookup(envPrefix + "PROVIDER"); ok {
		c.Provider = generation.Provider(strings.ToLower(strings.TrimSpace(value)))
	}
	if value, ok := lookup(envPrefix + "DEFAULT_ACTION"); ok {
		action := strings.TrimSpace(value)
		c.DefaultAction = &action
	}
	if value, ok := lookup(envPrefix + "TEMPERATURE"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("config: %sTEMPERATURE: %w", envPrefix, err)
		}
		c.Temperature = parsed
	}
	if value, ok := lookup(envPrefix + "TIMEOUT"); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", envPrefix, err)
		}
		c.Timeout = parsed
	}
	return nil
}

func (c *Config) applyDefaults(lookup LookupEnv) {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Renderer == "" {
		c.Renderer = DefaultRenderer
	}
	if c.Temperature == 0 {
		c.Temperature = generation.DefaultTemperature
	}
	if c.Timeout == 0 {
		c.Timeout = generation.DefaultTimeout
	}
	if c.DefaultAction == nil {
		action := fallback.DefaultAction
		c.DefaultAction = &action
	}
	if c.Provider == "" {
		c.Provider = detectProvider(lookup)
	}
	if c.APIKey == "" {
		c.APIKey = providerKey(c.Provider, lookup)
	}
	if c.Model == "" {
		switch c.Provider {
		case generation.ProviderOpenAI:
			c.Model = generation.DefaultOpenAIModel
		case generation.ProviderGemini:
			c.Model = generation.DefaultGeminiModel
		}
	}
}

// Validate reports configuration values no component can accept.
func (c Config) Validate() error {
	var errs []error
	known := false
	for _, provider := range generation.Providers() {
		if c.Provider == provider {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("config: unknown provider %q", c.Provider))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("config: temperature %v outside [0, 2]", c.Temperature))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config: negative timeout %s", c.Timeout))
	}
	return errors.Join(errs...)
}

// Action returns the cta action token for fallback documents.
func (c Config) Action() string {
	if c.DefaultAction == nil {
		return fallback.DefaultAction
	}
	return *c.DefaultAction
}

// Generation returns the provider configuration for generation.NewGenerator.
// The static provider reads its candidate file here.
func (c Config) Generation() (generation.ProviderConfig, error) {
	out := generation.ProviderConfig{
		Provider:    c.Provider,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
	if c.Provider == generation.ProviderStatic && c.StaticCandidate != "" {
		data, err := os.ReadFile(c.StaticCandidate)
		if err != nil {
			return generation.ProviderConfig{}, fmt.Errorf("config: read static candidate: %w", err)
		}
		out.StaticText = string(data)
	}
	return out, nil
}

// detectProvider picks the first provider with a key in the environment,
// falling back to static so the service still answers with fallbacks.
func detectProvider(lookup LookupEnv) generation.Provider {
	for _, provider := range []generation.Provider{generation.ProviderOpenAI, generation.ProviderGemini} {
		if providerKey(provider, lookup) != "" {
			return provider
		}
	}
	return generation.ProviderStatic
}

func providerKey(provider generation.Provider, lookup LookupEnv) string {
	var names []string
	switch provider {
	case generation.ProviderOpenAI:
		names = []string{"OPENAI_API_KEY", "OPEN_AI_KEY"}
	case generation.ProviderGemini:
		names = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	for _, name := range names {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
