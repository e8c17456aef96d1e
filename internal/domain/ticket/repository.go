package ticket

import "context"

// Repository is the persistence port for tickets. Save is an attributed
// change: the author and comment are journaled alongside the field update,
// mirroring the tracker's own change history.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Ticket, error)
	Insert(ctx context.Context, t *Ticket) error
	Save(ctx context.Context, t *Ticket, author, comment string) error
}
