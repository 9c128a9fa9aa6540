package completion

import (
	"context"
	"errors"
	"testing"

	"ielts-reading/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangchainClient_Complete(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Question 1: ..."}}}}
	client := NewLangchainClient(model)

	out, err := client.Complete(context.Background(), domain.NewCompletionRequest("be an examiner", "write questions", 0.5, 2000))
	require.NoError(t, err)
	assert.Equal(t, "Question 1: ...", out)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.TextContent{Text: "be an examiner"}, model.messages[0].Parts[0])
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, llms.TextContent{Text: "write questions"}, model.messages[1].Parts[0])
	assert.Equal(t, 0.5, model.options.Temperature)
	assert.Equal(t, 2000, model.options.MaxTokens)
}

func TestLangchainClient_Errors(t *testing.T) {
	req := domain.NewCompletionRequest("s", "u", 0.1, 0)

	failing := NewLangchainClient(&fakeModel{err: errors.New("connection refused")})
	_, err := failing.Complete(context.Background(), req)
	assert.ErrorContains(t, err, "connection refused")

	empty := NewLangchainClient(&fakeModel{resp: &llms.ContentResponse{}})
	_, err = empty.Complete(context.Background(), req)
	assert.ErrorContains(t, err, "no choices")
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "gpt-4o-mini", "", nil)
	assert.Error(t, err)
}
