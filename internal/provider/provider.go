// Package provider wraps the generative-AI text completion services behind a
// single capability so handlers can be exercised without a network.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aicodegen-backend/config"
	"aicodegen-backend/internal/utils"
)

var (
	// ErrQuotaExceeded means the provider rejected the call for rate or quota reasons.
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	// ErrSafetyBlocked means the prompt or the answer was blocked by a safety policy.
	ErrSafetyBlocked = errors.New("provider safety filter blocked the request")
	// ErrEmptyResponse means the call succeeded but produced no text.
	ErrEmptyResponse = errors.New("provider returned an empty response")
)

// Options are the per-call generation parameters.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Provider is a text completion service: one prompt in, one text blob out.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// New builds the provider selected by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := utils.NewHTTPClient(timeout)

	switch strings.ToLower(cfg.Provider) {
	case config.ProviderGemini, "":
		return NewGemini(ctx, GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			HTTPClient: httpClient,
		})
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			HTTPClient: httpClient,
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
