package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledgerline/ledgerline/internal/models"
)

var (
	codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\n?(.*?)\n?```$")
	inlineBullet     = regexp.MustCompile(`([^\n])[ \t]+- `)
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
)

// stripCodeFence removes a Markdown code-fence wrapper from a model reply,
// if present. Models frequently fence JSON output despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// normalizeAnswer cleans up model-produced markdown: CRLF to LF, a line
// break before any bullet dash that ran on from the previous sentence, and
// runs of blank lines collapsed to a single blank line.
func normalizeAnswer(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = inlineBullet.ReplaceAllString(s, "$1\n- ")
	s = excessBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// formatAvailableScenarios renders the literal scenario block prepended to
// answers for "list scenarios" questions.
func formatAvailableScenarios(summaries []models.ScenarioSummary) string {
	var sb strings.Builder
	sb.WriteString("Available Scenarios:")
	for _, s := range summaries {
		marker := ""
		if s.Active {
			marker = " [active]"
		}
		sb.WriteString(fmt.Sprintf("\n- %s (%s)%s: %s", s.Name, s.ID, marker, s.Description))
	}
	return sb.String()
}
