package completion

import (
	"context"
	"fmt"
	"net/http"

	"ielts-reading/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangchainClient adapts any langchaingo model to domain.CompletionClient
type LangchainClient struct {
	model llms.Model
}

// NewLangchainClient wraps an existing langchaingo model
func NewLangchainClient(model llms.Model) *LangchainClient {
	return &LangchainClient{model: model}
}

// NewOllamaClient connects to an Ollama server
func NewOllamaClient(serverURL, model string, httpClient *http.Client) (*LangchainClient, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLangchainClient(llm), nil
}

// NewOpenAIClient talks to OpenAI, or to any compatible server when baseURL is set
func NewOpenAIClient(apiKey, model, baseURL string, httpClient *http.Client) (*LangchainClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithHTTPClient(httpClient),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewLangchainClient(llm), nil
}

func (c *LangchainClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == domain.RoleSystem {
			role = llms.ChatMessageTypeSystem
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ domain.CompletionClient = (*LangchainClient)(nil)
