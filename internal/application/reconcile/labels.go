package reconcile

import "boardsync/internal/domain/ticket"

// FieldUpdate is the partial ticket update a recognized label maps to.
type FieldUpdate struct {
	Component string
	Priority  string
}

// labelFields is the static label-to-field table. It is built once and
// never mutated after init.
var labelFields = map[string]FieldUpdate{
	"3TU.DC":    {Component: "Datacentrum"},
	"Zandmotor": {Component: "Zandmotor"},
	"Datacite":  {Component: "Datacite"},
	"P1":        {Priority: "highest"},
	"P2":        {Priority: "high"},
	"P3":        {Priority: "normal"},
	"P4":        {Priority: "low"},
	"P5":        {Priority: "lowest"},
}

// ApplyLabel merges a recognized label's field updates into the ticket and
// reports whether the label was recognized. Unrecognized labels are
// appended to the ticket's keywords instead.
func ApplyLabel(t *ticket.Ticket, label string) bool {
	fields, ok := labelFields[label]
	if !ok {
		t.AppendKeyword(label)
		return false
	}
	if fields.Component != "" {
		t.SetComponent(fields.Component)
	}
	if fields.Priority != "" {
		t.SetPriority(fields.Priority)
	}
	return true
}
