package reconcile

import "strings"

// Provenance markers prefix every comment or description line this system
// writes, one per direction. They are the wire contract that breaks echo
// loops: a marked comment is never forwarded back to the system it came
// from, and marked lines are excluded when a card description is re-derived
// from the ticket.
const (
	MarkerFromTracker = "[trac]"
	MarkerFromBoard   = "[trello]"
)

// IsSelfAuthored reports whether the text was produced by the sync itself.
func IsSelfAuthored(text string) bool {
	return strings.HasPrefix(text, MarkerFromTracker) ||
		strings.HasPrefix(text, MarkerFromBoard)
}

// FilterSelfAuthoredLines drops description lines carrying a provenance
// prefix and trims trailing whitespace from the rest. The prefix check is
// deliberately unclosed ("[trac", "[trello") because existing card bodies
// were written that way.
func FilterSelfAuthoredLines(description string) string {
	var kept []string
	for _, line := range strings.Split(description, "\n") {
		if strings.HasPrefix(line, "[trac") || strings.HasPrefix(line, "[trello") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.Join(kept, "\n")
}
