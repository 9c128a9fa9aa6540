package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ielts-reading/internal/config"
	"ielts-reading/internal/domain"
	"ielts-reading/internal/logger"
	"ielts-reading/internal/parser"
	"ielts-reading/internal/prompt"
	"ielts-reading/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReadingService runs the passage, question and scoring pipeline
type ReadingService interface {
	GeneratePassage(ctx context.Context, testType domain.TestVariant, topic, difficulty string) (*domain.Passage, error)
	// GenerateQuestions builds a full test for passage. questionCount <= 0 uses the
	// distribution table as is.
	GenerateQuestions(ctx context.Context, passage string, testType domain.TestVariant, questionCount int) ([]domain.Question, error)
	ScoreTest(ctx context.Context, questions []domain.Question, answers map[string]string, testType domain.TestVariant) (*domain.TestResult, error)
	GetResult(ctx context.Context, resultID string) (*domain.TestResult, error)
	ListAttempts(ctx context.Context, limit int) ([]*domain.Attempt, error)
	Distribution(testType domain.TestVariant) ([]domain.TypeCount, error)
}

type readingService struct {
	client       domain.CompletionClient
	composer     *prompt.Composer
	parser       *parser.QuestionParser
	distribution domain.QuestionTypeDistribution
	bands        *domain.BandScoreConverter
	results      ResultCache
	attempts     domain.AttemptRepository
	pipeline     config.PipelineConfig
	now          func() time.Time
}

// NewReadingService wires the pipeline. attempts may be nil when persistence is disabled.
func NewReadingService(
	client domain.CompletionClient,
	composer *prompt.Composer,
	questionParser *parser.QuestionParser,
	distribution domain.QuestionTypeDistribution,
	bands *domain.BandScoreConverter,
	results ResultCache,
	attempts domain.AttemptRepository,
	pipeline config.PipelineConfig,
) ReadingService {
	if results == nil {
		results = noopResultCache{}
	}
	if pipeline.MaxParallel < 1 {
		pipeline.MaxParallel = 1
	}
	return &readingService{
		client:       client,
		composer:     composer,
		parser:       questionParser,
		distribution: distribution,
		bands:        bands,
		results:      results,
		attempts:     attempts,
		pipeline:     pipeline,
		now:          time.Now,
	}
}

func (s *readingService) GeneratePassage(ctx context.Context, testType domain.TestVariant, topic, difficulty string) (*domain.Passage, error) {
	l := logger.Get()
	req := s.composer.ComposePassage(prompt.PassageParams{TestType: testType, Topic: topic, Difficulty: difficulty})

	completion, err := s.client.Complete(ctx, req)
	if err != nil {
		l.Error("Passage generation failed", zap.String("test_type", string(testType)), zap.Error(err))
		return nil, domain.NewUpstreamFailureError("passage generation", err)
	}

	passage := parser.ParsePassage(completion, parser.PassageRequest{TestType: testType, Topic: topic, Difficulty: difficulty})
	l.Info("Generated passage",
		zap.String("passage_id", passage.ID),
		zap.String("test_type", string(testType)),
		zap.Int("word_count", passage.WordCount))
	return &passage, nil
}

func (s *readingService) GenerateQuestions(ctx context.Context, passage string, testType domain.TestVariant, questionCount int) ([]domain.Question, error) {
	rows, err := s.distribution.For(testType)
	if err != nil {
		return nil, domain.NewError(domain.CodeValidation, err.Error(), err)
	}
	if questionCount > 0 {
		rows = domain.ScaleDistribution(rows, questionCount)
	}

	completions, failures := s.completeAll(ctx, passage, testType, rows)

	l := logger.Get()
	questions := make([]domain.Question, 0, domain.StandardQuestionCount)
	next := 1
	for i, row := range rows {
		if failures[i] != nil {
			l.Warn("Question generation failed for type, continuing without it",
				zap.String("question_type", string(row.Type)),
				zap.Int("requested", row.Count),
				zap.Error(failures[i]))
			continue
		}
		var parsed []domain.Question
		parsed, next = s.parser.Parse(completions[i], row.Type, next)
		if len(parsed) != row.Count {
			l.Info("Parsed question count differs from request",
				zap.String("question_type", string(row.Type)),
				zap.Int("requested", row.Count),
				zap.Int("parsed", len(parsed)))
		}
		questions = append(questions, parsed...)
	}

	l.Info("Generated questions", zap.String("test_type", string(testType)), zap.Int("total", len(questions)))
	return questions, nil
}

// completeAll requests one completion per distribution row. Results are indexed by row so
// the caller can assign ids in table order regardless of completion order.
func (s *readingService) completeAll(ctx context.Context, passage string, testType domain.TestVariant, rows []domain.TypeCount) ([]string, []error) {
	completions := make([]string, len(rows))
	failures := make([]error, len(rows))

	call := func(i int) {
		req := s.composer.ComposeQuestions(prompt.QuestionParams{
			Type:     rows[i].Type,
			TestType: testType,
			Passage:  passage,
			Count:    rows[i].Count,
		})
		completions[i], failures[i] = s.client.Complete(ctx, req)
	}

	if !s.pipeline.ParallelGeneration {
		for i := range rows {
			call(i)
		}
		return completions, failures
	}

	// Failures are recorded per row and never cancel sibling calls.
	var g errgroup.Group
	g.SetLimit(s.pipeline.MaxParallel)
	for i := range rows {
		g.Go(func() error {
			call(i)
			return nil
		})
	}
	_ = g.Wait()
	return completions, failures
}

func (s *readingService) ScoreTest(ctx context.Context, questions []domain.Question, answers map[string]string, testType domain.TestVariant) (*domain.TestResult, error) {
	result := &domain.TestResult{
		ResultID:        util.NewULID(),
		TestType:        testType,
		TotalQuestions:  len(questions),
		QuestionResults: make([]domain.QuestionResult, 0, len(questions)),
		Timestamp:       s.now().UTC(),
	}

	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		answer := answers[q.ID]
		correct := domain.EvaluateAnswer(q.CorrectAnswer, q.Type, answer)
		if correct {
			result.CorrectAnswers++
		}
		result.QuestionResults = append(result.QuestionResults, domain.QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
		byID[q.ID] = q
	}

	band, err := s.bands.Convert(result.CorrectAnswers, testType)
	if err != nil {
		return nil, domain.NewError(domain.CodeValidation, err.Error(), err)
	}
	result.BandScore = band

	feedback, err := s.feedback(ctx, result, byID)
	if err != nil {
		return nil, err
	}
	result.DetailedFeedback = feedback

	s.remember(ctx, result)

	logger.Get().Info("Scored test",
		zap.String("result_id", result.ResultID),
		zap.String("test_type", string(testType)),
		zap.Int("correct", result.CorrectAnswers),
		zap.Int("total", result.TotalQuestions),
		zap.Float64("band", result.BandScore))
	return result, nil
}

func (s *readingService) feedback(ctx context.Context, result *domain.TestResult, questions map[string]domain.Question) (string, error) {
	if !s.pipeline.FeedbackEnabled {
		return SummaryFeedback(result), nil
	}

	req := s.composer.ComposeFeedback(prompt.FeedbackParams{
		TestType:  result.TestType,
		Correct:   result.CorrectAnswers,
		Total:     result.TotalQuestions,
		BandScore: result.BandScore,
		Incorrect: result.IncorrectResults(),
		Questions: questions,
	})
	text, err := s.client.Complete(ctx, req)
	if err != nil {
		logger.Get().Error("Feedback generation failed", zap.String("result_id", result.ResultID), zap.Error(err))
		return "", domain.NewUpstreamFailureError("feedback generation", err)
	}
	return parser.Clean(text), nil
}

// remember caches the result and stores the attempt summary. Both are best effort and
// never fail the scoring request.
func (s *readingService) remember(ctx context.Context, result *domain.TestResult) {
	l := logger.Get()
	if err := s.results.Put(ctx, result); err != nil {
		l.Warn("Failed to cache test result", zap.String("result_id", result.ResultID), zap.Error(err))
	}
	if s.attempts == nil {
		return
	}
	if err := s.attempts.CreateAttempt(ctx, domain.NewAttemptFromResult(result)); err != nil {
		l.Warn("Failed to persist attempt", zap.String("result_id", result.ResultID), zap.Error(err))
	}
}

func (s *readingService) GetResult(ctx context.Context, resultID string) (*domain.TestResult, error) {
	result, err := s.results.Get(ctx, resultID)
	if errors.Is(err, ErrResultNotFound) {
		return nil, domain.NewResultNotFoundError(resultID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *readingService) ListAttempts(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	if s.attempts == nil {
		return []*domain.Attempt{}, nil
	}
	attempts, err := s.attempts.ListRecentAttempts(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}
	return attempts, nil
}

func (s *readingService) Distribution(testType domain.TestVariant) ([]domain.TypeCount, error) {
	rows, err := s.distribution.For(testType)
	if err != nil {
		return nil, domain.NewError(domain.CodeValidation, err.Error(), err)
	}
	return rows, nil
}

// SummaryFeedback is the fixed feedback used when narrative feedback is disabled
func SummaryFeedback(result *domain.TestResult) string {
	return fmt.Sprintf("You answered %d of %d questions correctly, which corresponds to an IELTS %s Reading band score of %.1f.",
		result.CorrectAnswers, result.TotalQuestions, result.TestType.DisplayName(), result.BandScore)
}
