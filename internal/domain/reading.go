package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TestVariant identifies the IELTS module a test belongs to
type TestVariant string

const (
	VariantAcademic TestVariant = "academic"
	VariantGeneral  TestVariant = "general"
)

// ParseTestVariant accepts the canonical names plus a few common spellings
func ParseTestVariant(s string) (TestVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "academic":
		return VariantAcademic, nil
	case "general", "general_training", "general-training", "general training":
		return VariantGeneral, nil
	default:
		return "", fmt.Errorf("unknown test variant %q", s)
	}
}

// DisplayName is used in generated titles and prompts
func (v TestVariant) DisplayName() string {
	switch v {
	case VariantGeneral:
		return "General Training"
	default:
		return "Academic"
	}
}

// QuestionType is one of the IELTS reading item formats
type QuestionType string

const (
	TypeMultipleChoice      QuestionType = "multiple_choice"
	TypeTrueFalseNotGiven   QuestionType = "true_false_not_given"
	TypeMatchingHeadings    QuestionType = "matching_headings"
	TypeSentenceCompletion  QuestionType = "sentence_completion"
	TypeShortAnswer         QuestionType = "short_answer"
	TypeMatchingInformation QuestionType = "matching_information"
	TypeSummaryCompletion   QuestionType = "summary_completion"
	TypeMatchingFeatures    QuestionType = "matching_features"
	TypeNoteCompletion      QuestionType = "note_completion"
)

// QuestionTypes lists the closed set of supported types
var QuestionTypes = []QuestionType{
	TypeMultipleChoice,
	TypeTrueFalseNotGiven,
	TypeMatchingHeadings,
	TypeSentenceCompletion,
	TypeShortAnswer,
	TypeMatchingInformation,
	TypeSummaryCompletion,
	TypeMatchingFeatures,
	TypeNoteCompletion,
}

// IsKnown reports whether t belongs to the closed set
func (t QuestionType) IsKnown() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label renders the type for humans ("true_false_not_given" -> "true false not given")
func (t QuestionType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Difficulty bands assigned by the parser
const (
	BandEasy   = 5.0
	BandMedium = 6.5
	BandHard   = 7.5
)

// Passage is the reading text of a test session
type Passage struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	TestType   TestVariant `json:"testType"`
	Topic      string      `json:"topic"`
	Difficulty string      `json:"difficulty"`
	WordCount  int         `json:"wordCount"`
}

// Question is a single generated test item
type Question struct {
	ID             string       `json:"id"`
	Type           QuestionType `json:"type"`
	PromptText     string       `json:"promptText"`
	Options        []string     `json:"options"`
	CorrectAnswer  AnswerKey    `json:"correctAnswer"`
	Explanation    string       `json:"explanation"`
	DifficultyBand float64      `json:"difficultyBand"`
}

// QuestionID formats the stable id of the n-th question in a test
func QuestionID(n int) string {
	return fmt.Sprintf("question-%d", n)
}

// AnswerKey holds either a single accepted answer or a list of acceptable answers.
// On the wire it is a JSON string or a JSON array of strings.
type AnswerKey struct {
	Values []string
	IsList bool
}

// SingleAnswer builds a single-valued key
func SingleAnswer(s string) AnswerKey {
	return AnswerKey{Values: []string{s}}
}

// AnswerList builds a key that accepts any of the given answers
func AnswerList(values ...string) AnswerKey {
	return AnswerKey{Values: values, IsList: true}
}

// String renders the key for display
func (k AnswerKey) String() string {
	if !k.IsList {
		if len(k.Values) == 0 {
			return ""
		}
		return k.Values[0]
	}
	return strings.Join(k.Values, " / ")
}

// IsEmpty reports whether the key carries no usable answer
func (k AnswerKey) IsEmpty() bool {
	for _, v := range k.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if k.IsList {
		values := k.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(k.String())
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*k = AnswerKey{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("correctAnswer: %w", err)
		}
		*k = AnswerList(values...)
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("correctAnswer must be a string or a list of strings: %w", err)
	}
	*k = SingleAnswer(s)
	return nil
}

// QuestionResult is the evaluation of one question
type QuestionResult struct {
	QuestionID    string    `json:"questionId"`
	UserAnswer    string    `json:"userAnswer"`
	CorrectAnswer AnswerKey `json:"correctAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	Explanation   string    `json:"explanation"`
}

// TestResult is produced once per scoring request
type TestResult struct {
	ResultID         string           `json:"resultId"`
	TestType         TestVariant      `json:"testType"`
	TotalQuestions   int              `json:"totalQuestions"`
	CorrectAnswers   int              `json:"correctAnswers"`
	BandScore        float64          `json:"bandScore"`
	QuestionResults  []QuestionResult `json:"questionResults"`
	DetailedFeedback string           `json:"detailedFeedback"`
	Timestamp        time.Time        `json:"timestamp"`
}

// IncorrectResults returns the results the candidate got wrong, in order
func (r *TestResult) IncorrectResults() []QuestionResult {
	var wrong []QuestionResult
	for _, qr := range r.QuestionResults {
		if !qr.IsCorrect {
			wrong = append(wrong, qr)
		}
	}
	return wrong
}

// Attempt is the persisted summary of a scored test. The generated questions are not stored.
type Attempt struct {
	ID             string
	TestType       TestVariant
	TotalQuestions int
	CorrectAnswers int
	BandScore      float64
	CreatedAt      time.Time
}

// NewAttemptFromResult summarises a test result for storage
func NewAttemptFromResult(result *TestResult) *Attempt {
	return &Attempt{
		ID:             result.ResultID,
		TestType:       result.TestType,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		BandScore:      result.BandScore,
		CreatedAt:      result.Timestamp,
	}
}
