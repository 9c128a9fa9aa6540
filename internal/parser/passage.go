package parser

import (
	"fmt"
	"strings"

	"ielts-reading/internal/domain"
	"ielts-reading/internal/util"
)

// PassageRequest carries the request fields echoed onto the parsed passage
type PassageRequest struct {
	TestType   domain.TestVariant
	Topic      string
	Difficulty string
}

var sectionMarkers = []string{"key points:", "vocabulary level:", "title:"}

// ParsePassage extracts the title and body from a passage completion. Without a
// "Passage:" marker the whole cleaned completion becomes the body.
func ParsePassage(completion string, req PassageRequest) domain.Passage {
	lines := strings.Split(Clean(completion), "\n")

	title := ""
	var body []string
	inBody := false
	sawMarker := false

	for _, raw := range lines {
		text := stripMarkup(raw)
		lower := strings.ToLower(text)

		switch {
		case strings.HasPrefix(lower, "title:"):
			if title == "" {
				title = cleanValue(text[len("title:"):])
			}
			inBody = false
		case strings.HasPrefix(lower, "passage:"):
			sawMarker = true
			inBody = true
			if rest := cleanValue(text[len("passage:"):]); rest != "" {
				body = append(body, rest)
			}
		case inBody && hasAnyPrefix(lower, sectionMarkers) != "":
			inBody = false
		case inBody:
			body = append(body, strings.TrimRight(raw, " \t"))
		}
	}

	content := strings.TrimSpace(strings.Join(body, "\n"))
	if !sawMarker {
		content = strings.TrimSpace(Clean(completion))
	}
	if title == "" {
		title = fmt.Sprintf("%s Reading: %s", req.TestType.DisplayName(), req.Topic)
	}

	return domain.Passage{
		ID:         util.NewULID(),
		Title:      title,
		Content:    content,
		TestType:   req.TestType,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		WordCount:  len(strings.Fields(content)),
	}
}
