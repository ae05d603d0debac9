// Package summarizer turns formatted journal data into a short written
// analysis using a hosted language model.
package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/models"
)

// Supported providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Summarizer produces a written analysis of formatted journal data.
type Summarizer interface {
	Summarize(ctx context.Context, mode models.Mode, data string) (string, error)
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// New builds the Summarizer named by cfg.Provider. Provider "none" (or an
// empty one) yields apperr.ErrSummarizerUnavailable.
func New(cfg Config) (Summarizer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("summarizer: gemini api key: %w", apperr.ErrSummarizerUnavailable)
		}
		return &Gemini{
			apiKey:    cfg.APIKey,
			model:     orDefault(cfg.Model, DefaultGeminiModel),
			baseURL:   orDefault(cfg.BaseURL, geminiBaseURL),
			maxTokens: cfg.MaxTokens,
			client:    httpClient,
		}, nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("summarizer: anthropic api key: %w", apperr.ErrSummarizerUnavailable)
		}
		return &Anthropic{
			apiKey:    cfg.APIKey,
			model:     orDefault(cfg.Model, DefaultAnthropicModel),
			apiURL:    orDefault(cfg.BaseURL, anthropicBaseURL) + "/v1/messages",
			maxTokens: cfg.MaxTokens,
			client:    httpClient,
		}, nil
	case ProviderNone, "":
		return nil, apperr.ErrSummarizerUnavailable
	default:
		return nil, fmt.Errorf("summarizer: unknown provider %q", cfg.Provider)
	}
}

// Func adapts a plain function to the Summarizer interface.
type Func func(ctx context.Context, mode models.Mode, data string) (string, error)

// Summarize calls f.
func (f Func) Summarize(ctx context.Context, mode models.Mode, data string) (string, error) {
	return f(ctx, mode, data)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
