package completion

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ielts-reading/internal/domain"

	"github.com/go-resty/resty/v2"
)

// RESTClient speaks the OpenAI style chat completions protocol over plain HTTP. It covers
// self-hosted servers (vLLM, llama.cpp, LM Studio) that expose /v1/chat/completions.
type RESTClient struct {
	client *resty.Client
	model  string
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewRESTClient targets baseURL, e.g. http://localhost:8000/v1
func NewRESTClient(baseURL, model, apiKey string, httpClient *http.Client) *RESTClient {
	client := resty.New()
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	}
	client.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &RESTClient{client: client, model: model}
}

func (c *RESTClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var out chatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:       c.model,
			Messages:    req.Messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("chat completion returned %d: %s", resp.StatusCode(), msg)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

var _ domain.CompletionClient = (*RESTClient)(nil)
