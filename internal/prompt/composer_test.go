package prompt

import (
	"testing"

	"ielts-reading/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDifficulty(t *testing.T) {
	tests := []struct {
		count              int
		easy, medium, hard int
	}{
		{10, 3, 4, 3},
		{6, 2, 3, 2},
		{1, 1, 1, 1},
		{3, 1, 2, 1},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		easy, medium, hard := SplitDifficulty(tt.count)
		assert.Equal(t, tt.easy, easy, "easy for %d", tt.count)
		assert.Equal(t, tt.medium, medium, "medium for %d", tt.count)
		assert.Equal(t, tt.hard, hard, "hard for %d", tt.count)
	}
}

func TestCountParagraphs(t *testing.T) {
	assert.Equal(t, 3, CountParagraphs("One.\n\nTwo.\n\nThree."))
	assert.Equal(t, 2, CountParagraphs("One.\r\n\r\nTwo.\n  \n\n"))
	assert.Equal(t, DefaultParagraphCount, CountParagraphs("A single block\nwith line breaks only."))
	assert.Equal(t, DefaultParagraphCount, CountParagraphs(""))
}

func TestComposeQuestions_FillsPlaceholders(t *testing.T) {
	c := NewComposer()

	req := c.ComposeQuestions(QuestionParams{
		Type:     domain.TypeMultipleChoice,
		TestType: domain.VariantAcademic,
		Passage:  "Bees pollinate crops.\n\nThey are in decline.",
		Count:    10,
	})

	require.Len(t, req.Messages, 2)
	assert.Equal(t, examinerSystem, req.SystemPrompt())
	user := req.UserPrompt()
	assert.Contains(t, user, "Write 10 multiple choice questions")
	assert.Contains(t, user, "Bees pollinate crops.")
	assert.Contains(t, user, "roughly 3 easy, 4 medium and 3 hard")
	assert.Contains(t, user, "IELTS Academic Reading passage")
	assert.NotContains(t, user, "{numberOfQuestions}")
	assert.Equal(t, 0.5, req.Temperature)
	assert.Equal(t, 2000, req.MaxTokens)
}

func TestComposeQuestions_MatchingHeadingsCounts(t *testing.T) {
	c := NewComposer()

	req := c.ComposeQuestions(QuestionParams{
		Type:    domain.TypeMatchingHeadings,
		Passage: "no blank lines in this passage at all",
		Count:   5,
	})

	user := req.UserPrompt()
	assert.Contains(t, user, "The passage has 5 paragraphs")
	assert.Contains(t, user, "a list of 7 headings")
}

func TestComposeQuestions_UnknownTypeUsesGeneric(t *testing.T) {
	c := NewComposer()

	req := c.ComposeQuestions(QuestionParams{
		Type:    domain.QuestionType("diagram_labelling"),
		Passage: "text",
	})

	user := req.UserPrompt()
	assert.Contains(t, user, `Write 1 IELTS Reading questions of type "diagram labelling"`)
}

func TestComposePassage_Defaults(t *testing.T) {
	c := NewComposer()

	req := c.ComposePassage(PassageParams{})
	user := req.UserPrompt()
	assert.Contains(t, user, "IELTS Academic Reading passage")
	assert.Contains(t, user, "Topic: general interest")
	assert.Contains(t, user, "Difficulty: medium")
	assert.Contains(t, user, "about 850 words")
	assert.Equal(t, 0.7, req.Temperature)

	req = c.ComposePassage(PassageParams{TestType: domain.VariantGeneral, Topic: " workplace safety ", Difficulty: "hard"})
	user = req.UserPrompt()
	assert.Contains(t, user, "IELTS General Training Reading passage")
	assert.Contains(t, user, "Topic: workplace safety\n")
	assert.Contains(t, user, "about 700 words")
}

func TestComposeFeedback(t *testing.T) {
	c := NewComposer()

	req := c.ComposeFeedback(FeedbackParams{
		TestType:  domain.VariantGeneral,
		Correct:   27,
		Total:     40,
		BandScore: 5.5,
		Incorrect: []domain.QuestionResult{
			{QuestionID: "question-2", UserAnswer: "", CorrectAnswer: domain.SingleAnswer("False")},
		},
		Questions: map[string]domain.Question{
			"question-2": {ID: "question-2", Type: domain.TypeTrueFalseNotGiven},
		},
	})

	user := req.UserPrompt()
	assert.Contains(t, user, "Score: 27 out of 40 correct")
	assert.Contains(t, user, "Band score: 5.5")
	assert.Contains(t, user, `- question-2 (true false not given): answered "(no answer)", expected "False"`)
	assert.Equal(t, 800, req.MaxTokens)
}

func TestComposeFeedback_NoMistakes(t *testing.T) {
	req := NewComposer().ComposeFeedback(FeedbackParams{Correct: 40, Total: 40, BandScore: 9})
	assert.Contains(t, req.UserPrompt(), "Questions answered incorrectly:\nNone.")
}

func TestNewComposerWithTemplates_Override(t *testing.T) {
	custom := Template{
		Name:         PassageTemplate,
		Version:      "v2",
		System:       "sys",
		Text:         "Topic={topic} {unknown}",
		Placeholders: []string{PHTopic},
		Temperature:  0.1,
		MaxTokens:    10,
	}
	c := NewComposerWithTemplates(map[string]Template{PassageTemplate: custom})

	req := c.ComposePassage(PassageParams{Topic: "tides"})
	assert.Equal(t, "Topic=tides {unknown}", req.UserPrompt())
	assert.Equal(t, "sys", req.SystemPrompt())

	_, ok := c.Template(FeedbackTemplate)
	assert.True(t, ok, "non-overridden templates are kept")
}

func TestDefaultTemplates_CoverEveryQuestionType(t *testing.T) {
	templates := DefaultTemplates()
	for _, qType := range domain.QuestionTypes {
		tmpl, ok := templates[string(qType)]
		require.True(t, ok, "missing template for %s", qType)
		assert.Contains(t, tmpl.Text, "Correct Answer:")
		assert.Equal(t, string(qType)+"@v1", tmpl.ID())
	}
}
