package parser

import (
	"regexp"
	"strings"
)

var (
	thinkBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
	fenceLine  = regexp.MustCompile("(?m)^[ \t]*```[a-zA-Z0-9_-]*[ \t]*$")
)

// Clean removes reasoning blocks and markdown code fences some models wrap around their
// answer. An unterminated <think> block is left in place.
func Clean(completion string) string {
	cleaned := strings.ReplaceAll(completion, "\r\n", "\n")
	cleaned = thinkBlock.ReplaceAllString(cleaned, "")
	cleaned = fenceLine.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
