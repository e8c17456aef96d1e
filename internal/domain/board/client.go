package board

import "context"

// Client is the outbound port to the board service. Implementations perform
// synchronous network calls bounded by their own timeout; no retry or
// caching happens behind this interface, every call re-reads the source of
// truth.
type Client interface {
	// GetBoards lists the boards of the configured organisations.
	GetBoards(ctx context.Context) ([]Board, error)
	GetCards(ctx context.Context, boardID string) ([]Card, error)
	GetLists(ctx context.Context, boardID string) ([]List, error)
	// SearchCards runs a free-text card search across the account.
	SearchCards(ctx context.Context, query string) ([]Card, error)
	CreateCard(ctx context.Context, listID, name, desc string) (*Card, error)
	UpdateCard(ctx context.Context, cardID, name, desc string) error
	AddComment(ctx context.Context, cardID, text string) error
}
