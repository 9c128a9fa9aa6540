package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ielts-reading/internal/config"
	"ielts-reading/internal/domain"
	"ielts-reading/internal/parser"
	"ielts-reading/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPassage = "Paragraph one about tides.\n\nParagraph two about the moon.\n\nParagraph three about coasts."

func newTestService(t *testing.T, client domain.CompletionClient, results ResultCache, attempts domain.AttemptRepository, pipeline config.PipelineConfig) *readingService {
	t.Helper()
	bands, err := domain.NewBandScoreConverter(domain.DefaultBandTables())
	require.NoError(t, err)

	svc := NewReadingService(client, prompt.NewComposer(), parser.NewQuestionParser(nil),
		domain.DefaultDistribution(), bands, results, attempts, pipeline).(*readingService)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestGeneratePassage(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req domain.CompletionRequest) bool {
		return req.Temperature == 0.7 && req.SystemPrompt() != ""
	})).Return("Title: Ocean Tides\nPassage:\nTides rise and fall twice a day.\nKey Points:\n- tides", nil)

	svc := newTestService(t, client, nil, nil, config.PipelineConfig{})
	passage, err := svc.GeneratePassage(context.Background(), domain.VariantAcademic, "tides", "medium")

	require.NoError(t, err)
	assert.Equal(t, "Ocean Tides", passage.Title)
	assert.Equal(t, "Tides rise and fall twice a day.", passage.Content)
	assert.Equal(t, 7, passage.WordCount)
	assert.Equal(t, domain.VariantAcademic, passage.TestType)
	assert.NotEmpty(t, passage.ID)
	client.AssertExpectations(t)
}

func TestGeneratePassage_UpstreamFailure(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	svc := newTestService(t, client, nil, nil, config.PipelineConfig{})
	_, err := svc.GeneratePassage(context.Background(), domain.VariantGeneral, "travel", "easy")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUpstreamFailure, domainErr.Code)
	assert.Contains(t, domainErr.Context["upstream_error"], "connection refused")
}

func TestGenerateQuestions_FullTest(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%v", parallel), func(t *testing.T) {
			rows, err := domain.DefaultDistribution().For(domain.VariantAcademic)
			require.NoError(t, err)
			client := newScriptedClient(prompt.NewComposer(), testPassage, domain.VariantAcademic, rows)

			svc := newTestService(t, client, nil, nil, config.PipelineConfig{ParallelGeneration: parallel, MaxParallel: 4})
			questions, err := svc.GenerateQuestions(context.Background(), testPassage, domain.VariantAcademic, 0)

			require.NoError(t, err)
			require.Len(t, questions, domain.StandardQuestionCount)
			for i, q := range questions {
				assert.Equal(t, domain.QuestionID(i+1), q.ID)
			}

			// Ids follow table order regardless of completion order.
			offset := 0
			for _, row := range rows {
				for k := 1; k <= row.Count; k++ {
					q := questions[offset]
					assert.Equal(t, row.Type, q.Type)
					assert.Equal(t, fmt.Sprintf("%s-%d", row.Type, k), q.CorrectAnswer.String())
					offset++
				}
			}
			assert.Len(t, client.requested, len(rows))
		})
	}
}

func TestGenerateQuestions_TypeFailureIsSkipped(t *testing.T) {
	rows, err := domain.DefaultDistribution().For(domain.VariantGeneral)
	require.NoError(t, err)
	client := newScriptedClient(prompt.NewComposer(), testPassage, domain.VariantGeneral, rows)
	client.failures[domain.TypeMatchingHeadings] = errors.New("timeout")

	svc := newTestService(t, client, nil, nil, config.PipelineConfig{})
	questions, err := svc.GenerateQuestions(context.Background(), testPassage, domain.VariantGeneral, 0)

	require.NoError(t, err)
	assert.Len(t, questions, domain.StandardQuestionCount-4)
	for i, q := range questions {
		assert.Equal(t, domain.QuestionID(i+1), q.ID, "ids stay contiguous after a failed type")
		assert.NotEqual(t, domain.TypeMatchingHeadings, q.Type)
	}
}

func TestGenerateQuestions_ScaledCount(t *testing.T) {
	rows, err := domain.DefaultDistribution().For(domain.VariantAcademic)
	require.NoError(t, err)
	scaled := domain.ScaleDistribution(rows, 10)
	client := newScriptedClient(prompt.NewComposer(), testPassage, domain.VariantAcademic, scaled)

	svc := newTestService(t, client, nil, nil, config.PipelineConfig{})
	questions, err := svc.GenerateQuestions(context.Background(), testPassage, domain.VariantAcademic, 10)

	require.NoError(t, err)
	assert.Len(t, questions, 10)
	assert.Equal(t, "question-10", questions[9].ID)
}

func TestGenerateQuestions_UnknownVariant(t *testing.T) {
	svc := newTestService(t, new(MockCompletionClient), nil, nil, config.PipelineConfig{})
	_, err := svc.GenerateQuestions(context.Background(), testPassage, domain.TestVariant("listening"), 0)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
}

// fortyQuestions builds a 40 question test and answers the first `correct` of them right
func fortyQuestions(correct int) ([]domain.Question, map[string]string) {
	questions := make([]domain.Question, 0, domain.StandardQuestionCount)
	answers := make(map[string]string, domain.StandardQuestionCount)
	for i := 1; i <= domain.StandardQuestionCount; i++ {
		q := domain.Question{
			ID:            domain.QuestionID(i),
			Type:          domain.TypeTrueFalseNotGiven,
			CorrectAnswer: domain.SingleAnswer("True"),
			Explanation:   "stated in paragraph A",
		}
		questions = append(questions, q)
		if i <= correct {
			answers[q.ID] = " true "
		} else {
			answers[q.ID] = "False"
		}
	}
	return questions, answers
}

func TestScoreTest_EndToEndBands(t *testing.T) {
	tests := []struct {
		variant domain.TestVariant
		band    float64
	}{
		{domain.VariantAcademic, 6.0},
		{domain.VariantGeneral, 5.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			results := new(MockResultCache)
			results.On("Put", mock.Anything, mock.AnythingOfType("*domain.TestResult")).Return(nil)
			attempts := new(MockAttemptRepository)
			attempts.On("CreateAttempt", mock.Anything, mock.MatchedBy(func(a *domain.Attempt) bool {
				return a.CorrectAnswers == 27 && a.BandScore == tt.band && a.TestType == tt.variant
			})).Return(nil)

			svc := newTestService(t, new(MockCompletionClient), results, attempts, config.PipelineConfig{FeedbackEnabled: false})
			questions, answers := fortyQuestions(27)

			result, err := svc.ScoreTest(context.Background(), questions, answers, tt.variant)
			require.NoError(t, err)

			assert.Equal(t, 40, result.TotalQuestions)
			assert.Equal(t, 27, result.CorrectAnswers)
			assert.Equal(t, tt.band, result.BandScore)
			assert.Equal(t, tt.variant, result.TestType)
			assert.Len(t, result.ResultID, 26)
			assert.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), result.Timestamp)
			assert.Equal(t, SummaryFeedback(result), result.DetailedFeedback)
			require.Len(t, result.QuestionResults, 40)
			assert.True(t, result.QuestionResults[0].IsCorrect)
			assert.Equal(t, " true ", result.QuestionResults[0].UserAnswer)
			assert.False(t, result.QuestionResults[39].IsCorrect)
			assert.Len(t, result.IncorrectResults(), 13)

			results.AssertExpectations(t)
			attempts.AssertExpectations(t)
		})
	}
}

func TestScoreTest_MissingAnswersAreIncorrect(t *testing.T) {
	svc := newTestService(t, new(MockCompletionClient), nil, nil, config.PipelineConfig{})
	questions, _ := fortyQuestions(0)

	result, err := svc.ScoreTest(context.Background(), questions[:3], map[string]string{}, domain.VariantAcademic)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 0.0, result.BandScore)
	for _, qr := range result.QuestionResults {
		assert.False(t, qr.IsCorrect)
		assert.Equal(t, "", qr.UserAnswer)
	}
}

func TestScoreTest_NarrativeFeedback(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req domain.CompletionRequest) bool {
		return req.MaxTokens == 800
	})).Return("<think>plan</think>Good work on the first half.", nil)

	svc := newTestService(t, client, nil, nil, config.PipelineConfig{FeedbackEnabled: true})
	questions, answers := fortyQuestions(30)

	result, err := svc.ScoreTest(context.Background(), questions, answers, domain.VariantAcademic)
	require.NoError(t, err)
	assert.Equal(t, "Good work on the first half.", result.DetailedFeedback)
	assert.Equal(t, 7.0, result.BandScore)
	client.AssertExpectations(t)
}

func TestScoreTest_FeedbackFailureIsFatal(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	attempts := new(MockAttemptRepository)
	svc := newTestService(t, client, nil, attempts, config.PipelineConfig{FeedbackEnabled: true})
	questions, answers := fortyQuestions(10)

	_, err := svc.ScoreTest(context.Background(), questions, answers, domain.VariantGeneral)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUpstreamFailure, domainErr.Code)
	attempts.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
}

func TestScoreTest_PersistenceFailuresAreIgnored(t *testing.T) {
	results := new(MockResultCache)
	results.On("Put", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	attempts := new(MockAttemptRepository)
	attempts.On("CreateAttempt", mock.Anything, mock.Anything).Return(errors.New("ORA-12541"))

	svc := newTestService(t, new(MockCompletionClient), results, attempts, config.PipelineConfig{})
	questions, answers := fortyQuestions(40)

	result, err := svc.ScoreTest(context.Background(), questions, answers, domain.VariantGeneral)
	require.NoError(t, err)
	assert.Equal(t, 9.0, result.BandScore)
}

func TestGetResult(t *testing.T) {
	results := new(MockResultCache)
	stored := &domain.TestResult{ResultID: "01HX", BandScore: 6.5}
	results.On("Get", mock.Anything, "01HX").Return(stored, nil)
	results.On("Get", mock.Anything, "missing").Return(nil, ErrResultNotFound)

	svc := newTestService(t, new(MockCompletionClient), results, nil, config.PipelineConfig{})

	got, err := svc.GetResult(context.Background(), "01HX")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.GetResult(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeResultNotFound, domainErr.Code)
}

func TestListAttempts(t *testing.T) {
	attempts := new(MockAttemptRepository)
	list := []*domain.Attempt{{ID: "a"}, {ID: "b"}}
	attempts.On("ListRecentAttempts", mock.Anything, 2).Return(list, nil)
	attempts.On("ListRecentAttempts", mock.Anything, 5).Return(nil, errors.New("db gone"))

	svc := newTestService(t, new(MockCompletionClient), nil, attempts, config.PipelineConfig{})

	got, err := svc.ListAttempts(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	_, err = svc.ListAttempts(context.Background(), 5)
	assert.Error(t, err)

	noRepo := newTestService(t, new(MockCompletionClient), nil, nil, config.PipelineConfig{})
	empty, err := noRepo.ListAttempts(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDistribution(t *testing.T) {
	svc := newTestService(t, new(MockCompletionClient), nil, nil, config.PipelineConfig{})

	rows, err := svc.Distribution(domain.VariantGeneral)
	require.NoError(t, err)
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	assert.Equal(t, 40, total)

	_, err = svc.Distribution(domain.TestVariant("speaking"))
	assert.Error(t, err)
}
