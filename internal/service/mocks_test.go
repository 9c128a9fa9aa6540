package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ielts-reading/internal/domain"
	"ielts-reading/internal/prompt"

	"github.com/stretchr/testify/mock"
)

// --- MockCompletionClient ---
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListRecentAttempts(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockResultCache ---
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Put(ctx context.Context, result *domain.TestResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultCache) Get(ctx context.Context, resultID string) (*domain.TestResult, error) {
	args := m.Called(ctx, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestResult), args.Error(1)
}

// scriptedClient answers question prompts per type. Prompts are recognised by rendering
// them with the same composer the service uses.
type scriptedClient struct {
	mu        sync.Mutex
	byPrompt  map[string]domain.TypeCount
	failures  map[domain.QuestionType]error
	requested []domain.QuestionType
}

func newScriptedClient(composer *prompt.Composer, passage string, testType domain.TestVariant, rows []domain.TypeCount) *scriptedClient {
	c := &scriptedClient{
		byPrompt: make(map[string]domain.TypeCount, len(rows)),
		failures: map[domain.QuestionType]error{},
	}
	for _, row := range rows {
		req := composer.ComposeQuestions(prompt.QuestionParams{Type: row.Type, TestType: testType, Passage: passage, Count: row.Count})
		c.byPrompt[req.UserPrompt()] = row
	}
	return c
}

func (c *scriptedClient) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	row, ok := c.byPrompt[req.UserPrompt()]
	if !ok {
		return "", fmt.Errorf("unexpected prompt")
	}
	c.mu.Lock()
	c.requested = append(c.requested, row.Type)
	c.mu.Unlock()

	if err := c.failures[row.Type]; err != nil {
		return "", err
	}
	return synthQuestions(row.Type, row.Count), nil
}

// synthQuestions renders n well-formed question blocks whose answer is "<type>-<k>"
func synthQuestions(qType domain.QuestionType, n int) string {
	var b strings.Builder
	for k := 1; k <= n; k++ {
		fmt.Fprintf(&b, "Question %d: %s item %d\nCorrect Answer: %s-%d\nExplanation: because\nDifficulty: Medium\n\n", k, qType.Label(), k, qType, k)
	}
	return b.String()
}
