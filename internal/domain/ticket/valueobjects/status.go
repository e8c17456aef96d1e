package valueobjects

import "strings"

// TicketStatus is the ticket workflow state. Statuses outside the known set
// are carried through unchanged so foreign workflow states survive a sync.
type TicketStatus string

const (
	StatusNew      TicketStatus = "new"
	StatusReopened TicketStatus = "reopened"
	StatusDoing    TicketStatus = "doing"
	StatusTesting  TicketStatus = "testing"
	StatusDone     TicketStatus = "done"
)

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsKnown() bool {
	switch s {
	case StatusNew, StatusReopened, StatusDoing, StatusTesting, StatusDone:
		return true
	}
	return false
}

// StatusForList maps a board list name onto the ticket status machine.
// Pure: same inputs always yield the same output.
//
//	"To Do"     -> new while still new, reopened otherwise
//	"Doing"     -> doing
//	"Testing"   -> testing
//	"Done ..."  -> done
//	anything else leaves the current status untouched.
func StatusForList(current TicketStatus, listName string) TicketStatus {
	name := strings.ToLower(listName)
	switch {
	case name == "to do":
		if current == StatusNew {
			return StatusNew
		}
		return StatusReopened
	case name == "doing", name == "testing":
		return TicketStatus(strings.ReplaceAll(name, " ", ""))
	case strings.HasPrefix(name, "done"):
		return StatusDone
	default:
		return current
	}
}
