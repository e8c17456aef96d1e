package ticket

import (
	"fmt"

	vo "boardsync/internal/domain/ticket/valueobjects"
)

// Ticket is the issue-tracker side of a synced pair. A ticket with id 0 has
// not been persisted yet; creation is deferred to the reconciliation engine
// so the board allow-list can be enforced first.
type Ticket struct {
	id             int
	summary        string
	status         vo.TicketStatus
	owner          string
	resolution     string
	component      string
	priority       string
	keywords       string
	peerLink       string
	expectedPoints *int
	actualPoints   *int
	description    string
}

// New constructs an unsaved ticket seeded from a card that carries no
// ticket reference yet.
func New(summary, peerLink string) *Ticket {
	return &Ticket{
		summary:  summary,
		status:   vo.StatusNew,
		peerLink: peerLink,
	}
}

// Reconstruct rebuilds a persisted ticket from storage.
func Reconstruct(
	id int,
	summary string,
	status vo.TicketStatus,
	owner string,
	resolution string,
	component string,
	priority string,
	keywords string,
	peerLink string,
	expectedPoints *int,
	actualPoints *int,
	description string,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(summary) == 0 {
		return nil, fmt.Errorf("summary is required")
	}

	return &Ticket{
		id:             id,
		summary:        summary,
		status:         status,
		owner:          owner,
		resolution:     resolution,
		component:      component,
		priority:       priority,
		keywords:       keywords,
		peerLink:       peerLink,
		expectedPoints: expectedPoints,
		actualPoints:   actualPoints,
		description:    description,
	}, nil
}

func (t *Ticket) ID() int {
	return t.id
}

func (t *Ticket) Summary() string {
	return t.summary
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Owner() string {
	return t.owner
}

func (t *Ticket) Resolution() string {
	return t.resolution
}

func (t *Ticket) Component() string {
	return t.component
}

func (t *Ticket) Priority() string {
	return t.priority
}

func (t *Ticket) Keywords() string {
	return t.keywords
}

func (t *Ticket) PeerLink() string {
	return t.peerLink
}

func (t *Ticket) ExpectedPoints() *int {
	return t.expectedPoints
}

func (t *Ticket) ActualPoints() *int {
	return t.actualPoints
}

func (t *Ticket) Description() string {
	return t.description
}

// Exists reports whether the ticket has been persisted.
func (t *Ticket) Exists() bool {
	return t.id != 0
}

func (t *Ticket) SetID(id int) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetStatus(status vo.TicketStatus) {
	t.status = status
}

func (t *Ticket) SetOwner(owner string) {
	t.owner = owner
}

// ClearResolution drops any resolution; a card touched on the board is by
// definition not resolved anymore.
func (t *Ticket) ClearResolution() {
	t.resolution = ""
}

func (t *Ticket) SetSummary(summary string) {
	t.summary = summary
}

func (t *Ticket) SetPeerLink(link string) {
	t.peerLink = link
}

func (t *Ticket) SetComponent(component string) {
	t.component = component
}

func (t *Ticket) SetPriority(priority string) {
	t.priority = priority
}

func (t *Ticket) SetExpectedPoints(points int) {
	t.expectedPoints = &points
}

func (t *Ticket) SetActualPoints(points int) {
	t.actualPoints = &points
}

func (t *Ticket) SetDescription(description string) {
	t.description = description
}

// AppendKeyword appends a raw keyword, space-separated. Keywords are never
// deduplicated: applying the same unmapped label twice appends it twice.
// That matches the legacy tracker behavior and existing data.
func (t *Ticket) AppendKeyword(word string) {
	t.keywords += " " + word
}
