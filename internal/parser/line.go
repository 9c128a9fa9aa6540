package parser

import "strings"

// LineKind is the role of one completion line in the question grammar
type LineKind int

const (
	LineText LineKind = iota
	LineQuestion
	LineOption
	LineAnswer
	LineExplanation
	LineDifficulty
)

func (k LineKind) String() string {
	switch k {
	case LineQuestion:
		return "question"
	case LineOption:
		return "option"
	case LineAnswer:
		return "answer"
	case LineExplanation:
		return "explanation"
	case LineDifficulty:
		return "difficulty"
	default:
		return "text"
	}
}

// Line is a classified line with its prefix removed
type Line struct {
	Kind  LineKind
	Value string
}

// LineClassifier decides what a single non-blank line means. Swapping it changes the
// recognised prefixes without touching the state machine.
type LineClassifier interface {
	ParseLine(line string) Line
}

// EnglishClassifier recognises the English prefixes the prompts ask for
type EnglishClassifier struct{}

var optionPrefixes = []string{"a)", "b)", "c)", "d)"}

var answerPrefixes = []string{"correct answer:", "answer:"}

func (EnglishClassifier) ParseLine(line string) Line {
	text := stripMarkup(line)
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "question"):
		return Line{Kind: LineQuestion, Value: afterColon(text)}
	case hasAnyPrefix(lower, optionPrefixes) != "":
		return Line{Kind: LineOption, Value: cleanValue(strings.TrimLeft(text[2:], ".:- \t"))}
	case hasAnyPrefix(lower, answerPrefixes) != "":
		prefix := hasAnyPrefix(lower, answerPrefixes)
		return Line{Kind: LineAnswer, Value: cleanValue(text[len(prefix):])}
	case strings.HasPrefix(lower, "explanation:"):
		return Line{Kind: LineExplanation, Value: cleanValue(text[len("explanation:"):])}
	case strings.HasPrefix(lower, "difficulty:"):
		return Line{Kind: LineDifficulty, Value: cleanValue(text[len("difficulty:"):])}
	default:
		return Line{Kind: LineText, Value: text}
	}
}

func hasAnyPrefix(lower string, prefixes []string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return p
		}
	}
	return ""
}

// stripMarkup drops markdown emphasis and heading markers in front of a prefix,
// so "**Question 1:**" reads as "Question 1:".
func stripMarkup(line string) string {
	text := strings.TrimSpace(line)
	text = strings.TrimLeft(text, "*# \t")
	return strings.TrimSpace(text)
}

func afterColon(text string) string {
	if idx := strings.Index(text, ":"); idx >= 0 {
		return cleanValue(text[idx+1:])
	}
	return cleanValue(text)
}

func cleanValue(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "*")
	return strings.TrimSpace(s)
}
