package domain

import "strings"

// EvaluateAnswer reports whether candidate satisfies key for a question of type qType.
// It is a pure function; the outcome is computed once per question during scoring.
func EvaluateAnswer(key AnswerKey, qType QuestionType, candidate string) bool {
	if strings.TrimSpace(candidate) == "" || key.IsEmpty() {
		return false
	}

	if key.IsList {
		answer := normalizeAnswer(candidate)
		for _, accepted := range key.Values {
			if accepted = normalizeAnswer(accepted); accepted != "" && accepted == answer {
				return true
			}
		}
		return false
	}

	expected := key.String()
	if qType == TypeMultipleChoice {
		return normalizeChoice(candidate) == normalizeChoice(expected)
	}
	return normalizeAnswer(candidate) == normalizeAnswer(expected)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var choiceNoise = strings.NewReplacer("(", "", ")", "", ".", "")

// normalizeChoice makes "A", "a)", "(A)" and "A." equivalent
func normalizeChoice(s string) string {
	return normalizeAnswer(choiceNoise.Replace(s))
}
