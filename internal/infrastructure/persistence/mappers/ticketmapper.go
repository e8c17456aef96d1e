package mappers

import (
	"boardsync/internal/domain/ticket"
	vo "boardsync/internal/domain/ticket/valueobjects"
	"boardsync/internal/infrastructure/persistence/models"
)

// TicketMapper converts between the ticket domain entity and its gorm model.
type TicketMapper struct{}

func NewTicketMapper() TicketMapper {
	return TicketMapper{}
}

func (TicketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             uint(t.ID()),
		Summary:        t.Summary(),
		Status:         t.Status().String(),
		Owner:          t.Owner(),
		Resolution:     t.Resolution(),
		Component:      t.Component(),
		Priority:       t.Priority(),
		Keywords:       t.Keywords(),
		PeerLink:       t.PeerLink(),
		ExpectedPoints: t.ExpectedPoints(),
		ActualPoints:   t.ActualPoints(),
		Description:    t.Description(),
	}
}

func (TicketMapper) ToDomain(m *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.Reconstruct(
		int(m.ID),
		m.Summary,
		vo.TicketStatus(m.Status),
		m.Owner,
		m.Resolution,
		m.Component,
		m.Priority,
		m.Keywords,
		m.PeerLink,
		m.ExpectedPoints,
		m.ActualPoints,
		m.Description,
	)
}
