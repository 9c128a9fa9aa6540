package parser

import (
	"strings"
	"unicode/utf8"

	"ielts-reading/internal/domain"
)

// maxContinuationLength bounds, in characters, how long a prompt may grow from continuation lines
const maxContinuationLength = 200

// QuestionParser turns question completions into domain questions. It never fails: a
// malformed item keeps default field values instead of being dropped.
type QuestionParser struct {
	classifier LineClassifier
}

// NewQuestionParser returns a parser using the English classifier when classifier is nil
func NewQuestionParser(classifier LineClassifier) *QuestionParser {
	if classifier == nil {
		classifier = EnglishClassifier{}
	}
	return &QuestionParser{classifier: classifier}
}

// Parse extracts questions of qType from completion. Ids start at question-<startID> and
// are contiguous; next is the id number the following batch should start from.
func (p *QuestionParser) Parse(completion string, qType domain.QuestionType, startID int) (questions []domain.Question, next int) {
	questions = []domain.Question{}
	next = startID

	var current *domain.Question
	flush := func() {
		if current == nil {
			return
		}
		questions = append(questions, *current)
		current = nil
	}

	for _, raw := range strings.Split(Clean(completion), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := p.classifier.ParseLine(raw)

		if line.Kind == LineQuestion {
			flush()
			current = newQuestion(qType, next, line.Value)
			next++
			continue
		}
		if current == nil {
			continue
		}

		switch line.Kind {
		case LineOption:
			current.Options = append(current.Options, line.Value)
		case LineAnswer:
			current.CorrectAnswer = domain.SingleAnswer(line.Value)
		case LineExplanation:
			current.Explanation = line.Value
		case LineDifficulty:
			current.DifficultyBand = difficultyBand(line.Value)
		default:
			if utf8.RuneCountInString(current.PromptText) < maxContinuationLength {
				current.PromptText = joinText(current.PromptText, line.Value)
			}
		}
	}
	flush()

	return questions, next
}

func newQuestion(qType domain.QuestionType, n int, prompt string) *domain.Question {
	return &domain.Question{
		ID:             domain.QuestionID(n),
		Type:           qType,
		PromptText:     prompt,
		Options:        []string{},
		CorrectAnswer:  domain.SingleAnswer(""),
		DifficultyBand: domain.BandEasy,
	}
}

// difficultyBand maps the first keyword found, checked in easy, medium, hard order
func difficultyBand(value string) float64 {
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "easy"):
		return domain.BandEasy
	case strings.Contains(lower, "medium"):
		return domain.BandMedium
	case strings.Contains(lower, "hard"):
		return domain.BandHard
	default:
		return domain.BandEasy
	}
}

func joinText(prompt, extra string) string {
	if prompt == "" {
		return extra
	}
	return prompt + " " + extra
}
