package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"boardsync/internal/domain/ticket"
)

// Card titles carry the cross-reference for a synced pair:
//
//	#<id> [(<estimate>)] [[<time spent>]] - <summary>
//
// The id is a 4-digit number in the open range (1000, 3000); 4-digit
// numbers outside that band are title text, not ticket references.
// Estimate and time spent are integers in [1, 40); encodings outside that
// range are treated as absent, not rejected.

var (
	idPattern        = regexp.MustCompile(`(\d{4})`)
	estimatePattern  = regexp.MustCompile(`\((\d{1,2})\)`)
	timeSpentPattern = regexp.MustCompile(`\[(\d{1,2})\]`)

	idMarker        = regexp.MustCompile(`#\d{4}`)
	estimateMarker  = regexp.MustCompile(`\(\d{1,2}\)`)
	timeSpentMarker = regexp.MustCompile(`\[\d{1,2}\]`)

	leadingSeparators  = regexp.MustCompile(`^[ -]+`)
	trailingSeparators = regexp.MustCompile(`[ -]+$`)
)

// EncodeTitle produces the canonical card title for a persisted ticket.
func EncodeTitle(t *ticket.Ticket) string {
	parts := []string{fmt.Sprintf("#%d", t.ID())}
	if p := t.ExpectedPoints(); p != nil {
		parts = append(parts, fmt.Sprintf("(%d)", *p))
	}
	if p := t.ActualPoints(); p != nil {
		parts = append(parts, fmt.Sprintf("[%d]", *p))
	}
	parts = append(parts, "-", t.Summary())
	return strings.Join(parts, " ")
}

// DecodeID extracts the ticket id from a card title. The first 4-digit run
// is considered; it counts only when numerically inside (1000, 3000).
func DecodeID(title string) (int, bool) {
	m := idPattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 1000 || id >= 3000 {
		return 0, false
	}
	return id, true
}

// DecodeEstimate extracts the parenthesized estimate from a card title.
func DecodeEstimate(title string) (int, bool) {
	return decodeBounded(estimatePattern, title)
}

// DecodeTimeSpent extracts the bracketed time-spent value from a card title.
func DecodeTimeSpent(title string) (int, bool) {
	return decodeBounded(timeSpentPattern, title)
}

func decodeBounded(pattern *regexp.Regexp, title string) (int, bool) {
	m := pattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n >= 40 {
		return 0, false
	}
	return n, true
}

// CleanSummary strips the id, estimate, and time-spent markers plus any
// leading or trailing separators, yielding the human summary.
func CleanSummary(title string) string {
	s := idMarker.ReplaceAllString(title, "")
	s = estimateMarker.ReplaceAllString(s, "")
	s = timeSpentMarker.ReplaceAllString(s, "")
	s = leadingSeparators.ReplaceAllString(s, "")
	s = trailingSeparators.ReplaceAllString(s, "")
	return s
}
