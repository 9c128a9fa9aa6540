package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ielts-reading/internal/domain"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Complete(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "Title: Tides"}, {"type": "text", "text": "\nPassage: ..."}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	client, err := NewAnthropicClient("test-key", "claude-sonnet-4-20250514", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), domain.NewCompletionRequest("system text", "user text", 0.7, 2500))
	require.NoError(t, err)
	assert.Equal(t, "Title: Tides\nPassage: ...", out)

	assert.Equal(t, "claude-sonnet-4-20250514", captured["model"])
	assert.Equal(t, float64(2500), captured["max_tokens"])
	assert.Equal(t, 0.7, captured["temperature"])
	system := captured["system"].([]interface{})
	assert.Equal(t, "system text", system[0].(map[string]interface{})["text"])
	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]interface{})["role"])
}

func TestAnthropicClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad model"}}`))
	}))
	defer server.Close()

	client, err := NewAnthropicClient("test-key", "nope", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.NewCompletionRequest("s", "u", 0.1, 10))
	assert.ErrorContains(t, err, "failed to call Anthropic API")
}

func TestNewAnthropicClient_Validation(t *testing.T) {
	_, err := NewAnthropicClient("", "model")
	assert.Error(t, err)
	_, err = NewAnthropicClient("key", "")
	assert.Error(t, err)
}
