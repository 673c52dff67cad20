package agent

import "regexp"

// Intent detection is deliberately regex-based: these are the exact
// keyword heuristics the dashboard's CTA pipeline is specified against,
// not a language-understanding layer.
var (
	followUpPattern = regexp.MustCompile(`(?i)follow[\s-]?up|contact|message|reach\s+out|notify|late\s+notice`)

	reportPattern = regexp.MustCompile(`(?i)\breport\b|\bsummary\b|\bstatement\b|\banalysis\b|\bgenerate\b|\bprepare\b`)

	listScenariosPattern = regexp.MustCompile(`(?is)\b(?:list|show|available)\b.*\bscenarios?\b|\bscenarios?\b.*\b(?:list|show|available)\b`)
)

// isFollowUpQuestion reports whether the question asks about contacting or
// notifying borrowers.
func isFollowUpQuestion(q string) bool {
	return followUpPattern.MatchString(q)
}

// isReportQuestion reports whether the question asks for a report,
// statement, or other generated document.
func isReportQuestion(q string) bool {
	return reportPattern.MatchString(q)
}

// isListScenariosQuestion reports whether the question asks which
// scenarios exist.
func isListScenariosQuestion(q string) bool {
	return listScenariosPattern.MatchString(q)
}
