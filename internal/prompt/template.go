package prompt

import (
	"strings"
)

// Placeholder names understood by the templates
const (
	PHNumberOfQuestions  = "numberOfQuestions"
	PHEasyCount          = "easyCount"
	PHMediumCount        = "mediumCount"
	PHHardCount          = "hardCount"
	PHNumberOfParagraphs = "numberOfParagraphs"
	PHNumberOfHeadings   = "numberOfHeadings"
	PHPassage            = "passage"
	PHTestType           = "testType"
	PHTopic              = "topic"
	PHDifficulty         = "difficulty"
	PHWordCount          = "wordCount"
	PHQuestionType       = "questionType"
	PHCorrectAnswers     = "correctAnswers"
	PHTotalQuestions     = "totalQuestions"
	PHBandScore          = "bandScore"
	PHIncorrectSummary   = "incorrectSummary"
)

// Template is a named, versioned prompt with declared {placeholders} and the sampling
// parameters its completion should be requested with.
type Template struct {
	Name         string
	Version      string
	System       string
	Text         string
	Placeholders []string
	Temperature  float64
	MaxTokens    int
}

// Render substitutes declared placeholders. Undeclared {tokens} are left untouched and
// declared placeholders without a value render as an empty string.
func (t Template) Render(values map[string]string) string {
	pairs := make([]string, 0, len(t.Placeholders)*2)
	for _, name := range t.Placeholders {
		pairs = append(pairs, "{"+name+"}", values[name])
	}
	return strings.NewReplacer(pairs...).Replace(t.Text)
}

// ID is the template's name and version, used in logs
func (t Template) ID() string {
	return t.Name + "@" + t.Version
}
