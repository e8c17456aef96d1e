package reconcile

import (
	"context"

	"boardsync/internal/domain/board"
	"boardsync/internal/shared/config"
	"boardsync/internal/shared/logger"
)

// Sweeper performs an idempotent full reconciliation of every allow-listed
// board's cards, outside of the event-driven flow. Used for recovery after
// downtime; safe to run repeatedly because UpdateCard only writes on drift.
type Sweeper struct {
	engine *Engine
	boards board.Client
	trello *config.TrelloConfig
	logger logger.Interface
}

// SweepResult reports what a sweep touched.
type SweepResult struct {
	Boards         int `json:"boards"`
	Cards          int `json:"cards"`
	TicketsUpdated int `json:"tickets_updated"`
	CardsWritten   int `json:"cards_written"`
}

func NewSweeper(engine *Engine, boards board.Client, trello *config.TrelloConfig, log logger.Interface) *Sweeper {
	return &Sweeper{
		engine: engine,
		boards: boards,
		trello: trello,
		logger: log,
	}
}

// Run reconciles every card on every allow-listed board: each card is fed
// through UpdateTicket as a synthetic update, and when a persisted ticket
// results, UpdateCard corrects any drift on the board side. Per-card
// failures are logged and skipped so one bad card cannot stall recovery.
func (s *Sweeper) Run(ctx context.Context) (*SweepResult, error) {
	res := &SweepResult{}

	all, err := s.boards.GetBoards(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range all {
		if !s.trello.BoardAllowed(b.ID) {
			s.logger.Infow("skipping board", "board", b.ID, "name", b.Name)
			continue
		}
		res.Boards++

		cards, err := s.boards.GetCards(ctx, b.ID)
		if err != nil {
			return res, err
		}

		for i := range cards {
			card := &cards[i]
			res.Cards++

			ev := board.Event{
				Kind:  board.KindCardUpdated,
				Card:  board.CardRef{ID: card.ID, ShortLink: card.ShortLink, Name: card.Name},
				Board: board.BoardRef{ID: b.ID, Name: b.Name},
			}

			t, err := s.engine.UpdateTicket(ctx, ev, nil, "")
			if err != nil {
				s.logger.Errorw("sweep: ticket update failed", "card", card.Name, "error", err)
				continue
			}
			if t == nil || !t.Exists() {
				continue
			}
			res.TicketsUpdated++

			wrote, err := s.engine.UpdateCard(ctx, card, t)
			if err != nil {
				s.logger.Errorw("sweep: card update failed", "card", card.Name, "error", err)
				continue
			}
			if wrote {
				res.CardsWritten++
			}
		}
	}

	s.logger.Infow("sweep completed",
		"boards", res.Boards,
		"cards", res.Cards,
		"tickets_updated", res.TicketsUpdated,
		"cards_written", res.CardsWritten)
	return res, nil
}
