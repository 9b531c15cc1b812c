package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider names a content-generation backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	// ProviderStatic answers every request with fixed candidate text. An
	// empty text makes every request fail, which exercises the fallback.
	ProviderStatic Provider = "static"
)

// Providers returns every supported provider.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGemini, ProviderStatic}
}

// ProviderConfig selects and configures a Generator.
type ProviderConfig struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	StaticText  string
	HTTPClient  *http.Client
}

// NewGenerator constructs the Generator named by cfg.Provider.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider)))) {
	case ProviderOpenAI, "":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			HTTPClient:  cfg.HTTPClient,
		})
	case ProviderGemini:
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			HTTPClient:  cfg.HTTPClient,
		})
	case ProviderStatic:
		if strings.TrimSpace(cfg.StaticText) == "" {
			return Func(func(ctx context.Context, _, _ string) (string, error) {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				return "", ErrEmptyCompletion
			}), nil
		}
		return Static(cfg.StaticText), nil
	default:
		return nil, fmt.Errorf("generation: unknown provider %q", cfg.Provider)
	}
}
