package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ielts-reading/internal/domain"
)

// Defaults applied when an input is absent
const (
	DefaultTopic          = "general interest"
	DefaultDifficulty     = "medium"
	DefaultParagraphCount = 5
	DistractorHeadings    = 2
)

var defaultWordCount = map[domain.TestVariant]string{
	domain.VariantAcademic: "850",
	domain.VariantGeneral:  "700",
}

// Composer fills prompt templates with request parameters. It is pure string
// substitution and has no failure modes.
type Composer struct {
	templates map[string]Template
}

// NewComposer returns a composer using the built-in templates
func NewComposer() *Composer {
	return NewComposerWithTemplates(DefaultTemplates())
}

// NewComposerWithTemplates lets callers override individual templates. Missing entries fall
// back to the built-in ones.
func NewComposerWithTemplates(overrides map[string]Template) *Composer {
	templates := DefaultTemplates()
	for name, t := range overrides {
		templates[name] = t
	}
	return &Composer{templates: templates}
}

// Template returns the template registered under name
func (c *Composer) Template(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// PassageParams are the inputs of a passage prompt
type PassageParams struct {
	TestType   domain.TestVariant
	Topic      string
	Difficulty string
}

// ComposePassage builds the passage generation request
func (c *Composer) ComposePassage(p PassageParams) domain.CompletionRequest {
	variant := variantOrDefault(p.TestType)
	values := map[string]string{
		PHTestType:   variant.DisplayName(),
		PHTopic:      orDefault(p.Topic, DefaultTopic),
		PHDifficulty: orDefault(p.Difficulty, DefaultDifficulty),
		PHWordCount:  defaultWordCount[variant],
	}
	return c.request(c.templates[PassageTemplate], values)
}

// QuestionParams are the inputs of a question prompt
type QuestionParams struct {
	Type     domain.QuestionType
	TestType domain.TestVariant
	Passage  string
	Count    int
}

// ComposeQuestions builds the request for Count questions of the given type. Unknown types
// use the generic template.
func (c *Composer) ComposeQuestions(p QuestionParams) domain.CompletionRequest {
	count := p.Count
	if count <= 0 {
		count = 1
	}
	easy, medium, hard := SplitDifficulty(count)
	paragraphs := CountParagraphs(p.Passage)

	values := map[string]string{
		PHNumberOfQuestions:  strconv.Itoa(count),
		PHEasyCount:          strconv.Itoa(easy),
		PHMediumCount:        strconv.Itoa(medium),
		PHHardCount:          strconv.Itoa(hard),
		PHNumberOfParagraphs: strconv.Itoa(paragraphs),
		PHNumberOfHeadings:   strconv.Itoa(paragraphs + DistractorHeadings),
		PHPassage:            strings.TrimSpace(p.Passage),
		PHTestType:           variantOrDefault(p.TestType).DisplayName(),
		PHQuestionType:       p.Type.Label(),
	}

	t, ok := c.templates[string(p.Type)]
	if !ok {
		t = c.templates[GenericTemplate]
	}
	return c.request(t, values)
}

// FeedbackParams summarise an evaluated test for the narrative feedback prompt
type FeedbackParams struct {
	TestType  domain.TestVariant
	Correct   int
	Total     int
	BandScore float64
	Incorrect []domain.QuestionResult
	Questions map[string]domain.Question
}

// ComposeFeedback builds the narrative feedback request
func (c *Composer) ComposeFeedback(p FeedbackParams) domain.CompletionRequest {
	values := map[string]string{
		PHTestType:         variantOrDefault(p.TestType).DisplayName(),
		PHCorrectAnswers:   strconv.Itoa(p.Correct),
		PHTotalQuestions:   strconv.Itoa(p.Total),
		PHBandScore:        strconv.FormatFloat(p.BandScore, 'f', 1, 64),
		PHIncorrectSummary: incorrectSummary(p.Incorrect, p.Questions),
	}
	return c.request(c.templates[FeedbackTemplate], values)
}

func (c *Composer) request(t Template, values map[string]string) domain.CompletionRequest {
	return domain.NewCompletionRequest(t.System, t.Render(values), t.Temperature, t.MaxTokens)
}

// SplitDifficulty partitions count into easy/medium/hard targets at 30/40/30 percent using
// ceiling division on each bucket. The buckets can sum to more than count; they are
// guidance for the generator, not an exact partition.
func SplitDifficulty(count int) (easy, medium, hard int) {
	if count <= 0 {
		return 0, 0, 0
	}
	return ceilPercent(count, 30), ceilPercent(count, 40), ceilPercent(count, 30)
}

func ceilPercent(count, percent int) int {
	return (count*percent + 99) / 100
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// CountParagraphs counts blank-line separated non-empty blocks. Text without any
// blank-line structure yields DefaultParagraphCount.
func CountParagraphs(passage string) int {
	normalized := strings.ReplaceAll(passage, "\r\n", "\n")
	blocks := 0
	for _, block := range paragraphBreak.Split(normalized, -1) {
		if strings.TrimSpace(block) != "" {
			blocks++
		}
	}
	if blocks < 2 {
		return DefaultParagraphCount
	}
	return blocks
}

const maxSummaryItems = 15

func incorrectSummary(incorrect []domain.QuestionResult, questions map[string]domain.Question) string {
	if len(incorrect) == 0 {
		return "None."
	}
	var b strings.Builder
	for i, r := range incorrect {
		if i == maxSummaryItems {
			fmt.Fprintf(&b, "...and %d more\n", len(incorrect)-maxSummaryItems)
			break
		}
		qType := "unknown type"
		if q, ok := questions[r.QuestionID]; ok {
			qType = q.Type.Label()
		}
		answer := r.UserAnswer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(&b, "- %s (%s): answered %q, expected %q\n", r.QuestionID, qType, answer, r.CorrectAnswer.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

func variantOrDefault(v domain.TestVariant) domain.TestVariant {
	if v == "" {
		return domain.VariantAcademic
	}
	return v
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
