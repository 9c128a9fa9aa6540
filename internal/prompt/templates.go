package prompt

import "ielts-reading/internal/domain"

// Template names that are not question types
const (
	PassageTemplate  = "passage"
	FeedbackTemplate = "feedback"
	GenericTemplate  = "generic"
)

const examinerSystem = `You are an experienced IELTS Reading examiner and item writer. You write authentic, exam-standard material and follow the requested output format exactly, without commentary before or after it.`

// outputFormat is appended to every question template; the parser depends on these prefixes.
const outputFormat = `
Format every question exactly like this, one field per line:
Question 1: <question text>
A) <option>            (multiple choice only)
B) <option>
C) <option>
D) <option>
Correct Answer: <answer>
Explanation: <why the answer is correct, citing the passage>
Difficulty: <Easy|Medium|Hard>

Number the questions consecutively starting at 1.`

var difficultyMix = []string{PHEasyCount, PHMediumCount, PHHardCount}

func questionPlaceholders(extra ...string) []string {
	base := []string{PHNumberOfQuestions, PHPassage, PHTestType}
	base = append(base, difficultyMix...)
	return append(base, extra...)
}

func questionTemplate(qType domain.QuestionType, body string, extra ...string) Template {
	return Template{
		Name:         string(qType),
		Version:      "v1",
		System:       examinerSystem,
		Text:         body + "\n" + outputFormat,
		Placeholders: questionPlaceholders(extra...),
		Temperature:  0.5,
		MaxTokens:    2000,
	}
}

const passageHeader = `Read the following IELTS {testType} Reading passage:

{passage}

`

const difficultyLine = `Aim for roughly {easyCount} easy, {mediumCount} medium and {hardCount} hard questions.`

// DefaultTemplates returns the built-in template set keyed by name
func DefaultTemplates() map[string]Template {
	templates := map[string]Template{
		PassageTemplate: {
			Name:    PassageTemplate,
			Version: "v1",
			System:  examinerSystem,
			Text: `Write an original IELTS {testType} Reading passage.

Topic: {topic}
Difficulty: {difficulty}
Length: about {wordCount} words, in 5 to 7 paragraphs separated by blank lines.

The passage must contain enough factual detail, opinions and specific claims to support 40 questions of mixed types.

Respond in exactly this format:
Title: <title>
Passage:
<passage text>
Key Points:
<three to five bullet points summarising the passage>
Vocabulary Level: <short description>`,
			Placeholders: []string{PHTestType, PHTopic, PHDifficulty, PHWordCount},
			Temperature:  0.7,
			MaxTokens:    2500,
		},
		FeedbackTemplate: {
			Name:    FeedbackTemplate,
			Version: "v1",
			System:  `You are a supportive IELTS Reading tutor. Give specific, actionable feedback in plain prose.`,
			Text: `A candidate has just completed an IELTS {testType} Reading practice test.

Score: {correctAnswers} out of {totalQuestions} correct
Band score: {bandScore}

Questions answered incorrectly:
{incorrectSummary}

Write feedback of 150 to 250 words covering overall performance, the question types that caused the most difficulty, and three concrete strategies to reach the next band.`,
			Placeholders: []string{PHTestType, PHCorrectAnswers, PHTotalQuestions, PHBandScore, PHIncorrectSummary},
			Temperature:  0.6,
			MaxTokens:    800,
		},
		GenericTemplate: {
			Name:    GenericTemplate,
			Version: "v1",
			System:  examinerSystem,
			Text: passageHeader + `Write {numberOfQuestions} IELTS Reading questions of type "{questionType}" based on the passage.
` + outputFormat,
			Placeholders: []string{PHPassage, PHTestType, PHQuestionType, PHNumberOfQuestions},
			Temperature:  0.5,
			MaxTokens:    2000,
		},
	}

	for _, t := range []Template{
		questionTemplate(domain.TypeMultipleChoice, passageHeader+`Write {numberOfQuestions} multiple choice questions about the passage.
Each question has exactly four options labelled A) to D); only one is correct and the other three are plausible distractors.
The correct answer is the option letter only (A, B, C or D).
`+difficultyLine),
		questionTemplate(domain.TypeTrueFalseNotGiven, passageHeader+`Write {numberOfQuestions} statements about the passage for a TRUE / FALSE / NOT GIVEN task.
Use a balanced mix of the three answers. The correct answer is exactly one of: True, False, Not Given.
`+difficultyLine),
		questionTemplate(domain.TypeMatchingHeadings, passageHeader+`The passage has {numberOfParagraphs} paragraphs labelled A, B, C and so on in order.
Write a list of {numberOfHeadings} headings numbered i, ii, iii and so on; two of them are distractors that fit no paragraph.
Then write {numberOfQuestions} questions, each asking for the heading of one paragraph. Put the full heading list in the first question.
The correct answer is the roman numeral of the heading.
`+difficultyLine, PHNumberOfParagraphs, PHNumberOfHeadings),
		questionTemplate(domain.TypeSentenceCompletion, passageHeader+`Write {numberOfQuestions} sentence completion questions. Each sentence has one gap shown as ______.
The answer must be NO MORE THAN THREE WORDS taken directly from the passage.
`+difficultyLine),
		questionTemplate(domain.TypeShortAnswer, passageHeader+`Write {numberOfQuestions} short answer questions.
The answer must be NO MORE THAN THREE WORDS AND/OR A NUMBER taken from the passage.
`+difficultyLine),
		questionTemplate(domain.TypeMatchingInformation, passageHeader+`Paragraphs are labelled A, B, C and so on in order.
Write {numberOfQuestions} matching information questions, each describing a piece of information; the candidate must find the paragraph that contains it.
The correct answer is the paragraph letter only.
`+difficultyLine),
		questionTemplate(domain.TypeSummaryCompletion, passageHeader+`Write a short summary of part of the passage containing {numberOfQuestions} numbered gaps, then one question per gap.
Each answer is ONE or TWO WORDS taken from the passage.
`+difficultyLine),
		questionTemplate(domain.TypeMatchingFeatures, passageHeader+`Identify a set of people, organisations or dates from the passage and list them as options A) to D).
Write {numberOfQuestions} statements, each to be matched with one of the options. The correct answer is the option letter only.
`+difficultyLine),
		questionTemplate(domain.TypeNoteCompletion, passageHeader+`Write a set of notes on the passage containing {numberOfQuestions} gaps, then one question per gap.
Each answer is NO MORE THAN TWO WORDS taken from the passage.
`+difficultyLine),
	} {
		templates[t.Name] = t
	}

	return templates
}
