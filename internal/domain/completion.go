package domain

import "context"

// MessageRole tags a message sent to the completion service
type MessageRole string

const (
	RoleSystem MessageRole = "system"
	RoleUser   MessageRole = "user"
)

// ChatMessage is one role-tagged message of a completion request
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// CompletionRequest carries one system instruction, one user prompt and sampling parameters
type CompletionRequest struct {
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// NewCompletionRequest builds the usual system + user pair
func NewCompletionRequest(system, user string, temperature float64, maxTokens int) CompletionRequest {
	return CompletionRequest{
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// SystemPrompt returns the content of the first system message, if any
func (r CompletionRequest) SystemPrompt() string {
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

// UserPrompt returns the content of the last user message, if any
func (r CompletionRequest) UserPrompt() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// CompletionClient is the external text-generation service. It returns a single block of
// generated text; all structure is imposed by the caller.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
