package cfpwatch

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Comparer scores a call for papers against the knowledge base with an LLM.
type Comparer interface {
	// Compare returns the model's markdown assessment of how well the
	// candidate fits the knowledge base.
	Compare(ctx context.Context, kb, candidate string) (string, error)
}

// NoScore marks a response without a recognizable fit score.
const NoScore = -1

// ComparisonInstructions describes the fit scale given to the model.
const ComparisonInstructions = `You compare a call for papers (CFP) against a researcher's knowledge base (KB).

Identify the KB's main research direction and its secondary categories
(application domain, methodology, system layer). Then rate the CFP:

- 4/4: the CFP explicitly covers the KB's exact research direction.
- 3/4: otherwise, the CFP matches all three secondary categories.
- 2/4: the CFP matches two of the three secondary categories.
- 1/4: the CFP matches one of the three secondary categories.
- 0/4: the CFP matches none of them.

Answer in markdown with these sections:
## Score
The rating, written as N/4.
## Matching topics
Bullet list of CFP topics that match the KB.
## Rationale
Two or three sentences.
## Deadline
The submission deadline if stated, otherwise "not stated".`

// BuildComparisonPrompt builds the user prompt containing the KB and the CFP.
func BuildComparisonPrompt(kb, candidate string) string {
	var sb strings.Builder
	sb.WriteString("<knowledge_base>\n")
	sb.WriteString(strings.TrimSpace(kb))
	sb.WriteString("\n</knowledge_base>\n\n")
	sb.WriteString("<call_for_papers>\n")
	sb.WriteString(strings.TrimSpace(candidate))
	sb.WriteString("\n</call_for_papers>\n\n")
	sb.WriteString("Rate how well the call for papers fits the knowledge base.")
	return sb.String()
}

var scoreRe = regexp.MustCompile(`\b([0-4])\s*/\s*4\b`)

// ParseFitScore returns the first N/4 rating in response, or NoScore.
func ParseFitScore(response string) int {
	m := scoreRe.FindStringSubmatch(response)
	if m == nil {
		return NoScore
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// StripCodeFences removes markdown code fences models wrap answers in.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```markdown", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
