package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boardsync/internal/domain/board"
	"boardsync/internal/domain/ticket"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
)

// Resolver determines which entity on the other side a card or ticket
// corresponds to. It never caches: every resolution re-reads the source of
// truth.
type Resolver struct {
	tickets ticket.Repository
	boards  board.Client
	logger  logger.Interface
}

func NewResolver(tickets ticket.Repository, boards board.Client, log logger.Interface) *Resolver {
	return &Resolver{
		tickets: tickets,
		boards:  boards,
		logger:  log,
	}
}

// TicketForCard resolves the ticket a card refers to. A decodable id must
// resolve to an existing ticket; a miss is a data-integrity error, not
// something to paper over. A card without an id yields a new, unsaved
// ticket seeded from the card; creation is the engine's decision.
func (r *Resolver) TicketForCard(ctx context.Context, card board.CardRef) (*ticket.Ticket, error) {
	id, ok := DecodeID(card.Name)
	if !ok {
		r.logger.Debugw("card has no ticket id", "card", card.Name)
		return ticket.New(card.Name, card.URL()), nil
	}

	t, err := r.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("card %q references ticket %d which does not exist", card.Name, id))
		}
		return nil, err
	}
	return t, nil
}

// CardForTicket resolves the peer card for a ticket: by the embedded peer
// link when it parses as a card URL, otherwise by a text search for the
// id-prefixed title pattern. A search hit persists the discovered link back
// onto the ticket as an attributed sync change. Returns nil when no card is
// found; no card is ever created from this path.
func (r *Resolver) CardForTicket(ctx context.Context, t *ticket.Ticket, author string) (*board.Card, error) {
	if shortLink, ok := board.ShortLinkFromURL(t.PeerLink()); ok {
		return &board.Card{ID: shortLink, ShortLink: shortLink}, nil
	}

	cards, err := r.boards.SearchCards(ctx, strconv.Itoa(t.ID()))
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("#%04d ", t.ID())
	for i := range cards {
		c := &cards[i]
		if !strings.HasPrefix(c.Name, prefix) {
			continue
		}
		t.SetPeerLink(c.URL())
		comment := MarkerFromBoard + " Updated trello url to " + c.URL()
		if err := r.tickets.Save(ctx, t, author, comment); err != nil {
			return nil, err
		}
		return c, nil
	}

	return nil, nil
}
