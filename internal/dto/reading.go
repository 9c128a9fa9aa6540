package dto

import (
	"time"

	"ielts-reading/internal/domain"
)

// GeneratePassageRequest represents a passage generation request
// @Description Request body for generating a reading passage
type GeneratePassageRequest struct {
	TestType   string `json:"testType" validate:"required" example:"academic"`
	Topic      string `json:"topic" validate:"required,max=200" example:"renewable energy"`
	Difficulty string `json:"difficulty" validate:"required,max=50" example:"medium"`
}

// PassageResponse wraps a generated passage
type PassageResponse struct {
	Passage *domain.Passage `json:"passage"`
}

// GenerateQuestionsRequest represents a question generation request.
// QuestionCount is optional; omitted or 0 uses the full distribution table.
// @Description Request body for generating questions for a passage
type GenerateQuestionsRequest struct {
	Passage       string `json:"passage" validate:"required"`
	TestType      string `json:"testType" validate:"required" example:"general"`
	QuestionCount int    `json:"questionCount,omitempty" validate:"omitempty,min=1,max=100" example:"40"`
}

// QuestionsResponse wraps the generated questions in id order
type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// ScoreTestRequest represents a scoring request. UserAnswers is keyed by question id.
// @Description Request body for scoring a completed test
type ScoreTestRequest struct {
	Questions   []domain.Question `json:"questions" validate:"required"`
	UserAnswers map[string]string `json:"userAnswers" validate:"required"`
	TestType    string            `json:"testType" validate:"required" example:"academic"`
}

// AttemptResponse is one stored scoring summary
type AttemptResponse struct {
	ID             string    `json:"id"`
	TestType       string    `json:"testType"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	BandScore      float64   `json:"bandScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AttemptsResponse lists recent attempts, newest first
type AttemptsResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
}

// DistributionResponse describes how many questions of each type a full test has
type DistributionResponse struct {
	TestType string             `json:"testType"`
	Total    int                `json:"total"`
	Items    []domain.TypeCount `json:"items"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

// NewAttemptsResponse converts domain attempts to their API shape
func NewAttemptsResponse(attempts []*domain.Attempt) AttemptsResponse {
	out := AttemptsResponse{Attempts: make([]AttemptResponse, 0, len(attempts))}
	for _, a := range attempts {
		out.Attempts = append(out.Attempts, AttemptResponse{
			ID:             a.ID,
			TestType:       string(a.TestType),
			TotalQuestions: a.TotalQuestions,
			CorrectAnswers: a.CorrectAnswers,
			BandScore:      a.BandScore,
			CreatedAt:      a.CreatedAt,
		})
	}
	return out
}
