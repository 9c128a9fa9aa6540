package completion

import (
	"fmt"
	"net/http"

	"ielts-reading/internal/config"
	"ielts-reading/internal/domain"

	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultOllamaURL = "http://localhost:11434"

// NewFromConfig builds the configured provider wrapped in a ResilientClient
func NewFromConfig(cfg config.LLMConfig) (domain.CompletionClient, error) {
	base, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewResilientClient(base, cfg.Timeout, cfg.MaxRetries, cfg.RetryBackoff), nil
}

func newProvider(cfg config.LLMConfig) (domain.CompletionClient, error) {
	// Deadlines come from the resilient wrapper's context; no client-level timeout.
	httpClient := &http.Client{}

	switch cfg.Provider {
	case "ollama":
		serverURL := cfg.ServerURL
		if serverURL == "" {
			serverURL = defaultOllamaURL
		}
		return NewOllamaClient(serverURL, cfg.Model, httpClient)
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.ServerURL, httpClient)
	case "anthropic":
		opts := []option.RequestOption{option.WithHTTPClient(httpClient), option.WithMaxRetries(0)}
		if cfg.ServerURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.ServerURL))
		}
		return NewAnthropicClient(cfg.APIKey, cfg.Model, opts...)
	case "http":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("llm.server_url is required for the http provider")
		}
		return NewRESTClient(cfg.ServerURL, cfg.Model, cfg.APIKey, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
}
