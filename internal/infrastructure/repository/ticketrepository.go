package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"boardsync/internal/domain/ticket"
	"boardsync/internal/infrastructure/persistence/mappers"
	"boardsync/internal/infrastructure/persistence/models"
	"boardsync/internal/shared/db"
	apperrors "boardsync/internal/shared/errors"
)

// TicketRepository is the gorm-backed implementation of the ticket
// persistence port. Save journals the attributed change alongside the
// field update, mirroring the tracker's change history.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(database *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     database,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) GetByID(ctx context.Context, id int) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) Insert(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	return t.SetID(int(model.ID))
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket, author, comment string) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"summary":         model.Summary,
			"status":          model.Status,
			"owner":           model.Owner,
			"resolution":      model.Resolution,
			"component":       model.Component,
			"priority":        model.Priority,
			"keywords":        model.Keywords,
			"peer_link":       model.PeerLink,
			"expected_points": model.ExpectedPoints,
			"actual_points":   model.ActualPoints,
			"description":     model.Description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save ticket: %w", result.Error)
	}

	change := &models.TicketChangeModel{
		TicketID: model.ID,
		Author:   author,
		Comment:  comment,
	}
	if err := tx.Create(change).Error; err != nil {
		return fmt.Errorf("failed to journal ticket change: %w", err)
	}

	return nil
}

// Changes returns the journaled changes of a ticket, oldest first.
func (r *TicketRepository) Changes(ctx context.Context, ticketID int) ([]models.TicketChangeModel, error) {
	var changes []models.TicketChangeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket changes: %w", err)
	}
	return changes, nil
}
