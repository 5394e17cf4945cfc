package llm

import (
	"regexp"
	"strconv"
	"strings"
)

// FallbackScore is recorded when a grading response cannot be parsed.
const FallbackScore = 50

var (
	scoreRe    = regexp.MustCompile(`(?i)SCORE:\s*(\d{1,3})\s*/\s*100`)
	feedbackRe = regexp.MustCompile(`(?is)FEEDBACK:\s*(.+)`)
)

// ParseScore extracts the numeric score and feedback from a grading response
// following the "SCORE: n/100" / "FEEDBACK: ..." convention. When the score
// cannot be parsed it returns FallbackScore with the whole text as feedback.
func ParseScore(text string) (int, string) {
	score := FallbackScore
	feedback := strings.TrimSpace(text)

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 100 {
			score = n
		}
	}
	if m := feedbackRe.FindStringSubmatch(text); m != nil {
		feedback = strings.TrimSpace(m[1])
	}
	return score, feedback
}
