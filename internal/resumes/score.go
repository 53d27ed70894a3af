package resumes

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scoreRe  = regexp.MustCompile(`(?i)score\s*:\s*(\d{1,3})`)
	reasonRe = regexp.MustCompile(`(?is)reason\s*:\s*(.+)`)
)

// ParseAIResult extracts a score and feedback from a free-text AI response.
// The response format is a loose natural-language contract, so extraction
// degrades gracefully: a missing score stays nil (unscored, not zero) and a
// missing reason marker leaves the whole trimmed text as feedback.
func ParseAIResult(raw string) (*int, string) {
	text := strings.TrimSpace(raw)

	var score *int
	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			n = clamp(n, 0, 100)
			score = &n
		}
	}

	feedback := text
	if m := reasonRe.FindStringSubmatch(text); m != nil {
		feedback = strings.TrimSpace(m[1])
	}
	if feedback == "" {
		feedback = text
	}
	return score, feedback
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
