package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardsync/internal/domain/board"
	"boardsync/internal/domain/ticket"
	vo "boardsync/internal/domain/ticket/valueobjects"
	"boardsync/internal/shared/config"
)

func newSweepFixture(t *testing.T, trello *config.TrelloConfig, repo *mockTicketRepository, boards *mockBoardClient) *Sweeper {
	t.Helper()
	resolver := NewResolver(repo, boards, mockLogger{})
	tracker := &config.TrackerConfig{ProjectURL: "http://localhost/"}
	engine := NewEngine(repo, boards, resolver, &mockTxManager{}, trello, tracker, mockLogger{})
	return NewSweeper(engine, boards, trello, mockLogger{})
}

func TestSweepReconcilesDriftedCards(t *testing.T) {
	tickets := map[int]*ticket.Ticket{}
	for _, id := range []int{1500, 1501} {
		tk, err := ticket.Reconstruct(id, "Fix bug", vo.StatusNew, "alice", "", "", "", "", "", nil, nil, "")
		require.NoError(t, err)
		tickets[id] = tk
	}

	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			return tickets[id], nil
		},
	}

	cards := []board.Card{
		{ID: "c1", ShortLink: "aaaa1111", Name: "#1500 - Fix bug", Desc: "stale"},
		{ID: "c2", ShortLink: "bbbb2222", Name: "#1501 - Fix bug", Desc: "stale"},
		{ID: "c3", ShortLink: "cccc3333", Name: "Card without reference"},
	}
	boards := &mockBoardClient{
		getBoardsFunc: func(ctx context.Context) ([]board.Board, error) {
			return []board.Board{{ID: "b1", Name: "Datacentrum"}, {ID: "b2", Name: "Private"}}, nil
		},
		getCardsFunc: func(ctx context.Context, boardID string) ([]board.Card, error) {
			require.Equal(t, "b1", boardID)
			return cards, nil
		},
	}

	sweeper := newSweepFixture(t, &config.TrelloConfig{Boards: []string{"b1"}}, repo, boards)

	res, err := sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Boards)
	assert.Equal(t, 3, res.Cards)
	assert.Equal(t, 2, res.TicketsUpdated)
	assert.Equal(t, 2, res.CardsWritten)
	assert.Equal(t, 2, boards.updateCardCalls)
}

// The sweep converges: a second pass over already reconciled cards issues
// no board writes.
func TestSweepSecondPassWritesNothing(t *testing.T) {
	tk, err := ticket.Reconstruct(1500, "Fix bug", vo.StatusNew, "alice", "", "", "", "", "", nil, nil, "")
	require.NoError(t, err)

	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			return tk, nil
		},
	}

	cards := []board.Card{{ID: "c1", ShortLink: "aaaa1111", Name: "#1500 - Stale", Desc: ""}}
	boards := &mockBoardClient{
		getBoardsFunc: func(ctx context.Context) ([]board.Board, error) {
			return []board.Board{{ID: "b1"}}, nil
		},
		getCardsFunc: func(ctx context.Context, boardID string) ([]board.Card, error) {
			return cards, nil
		},
	}

	sweeper := newSweepFixture(t, &config.TrelloConfig{}, repo, boards)

	first, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.CardsWritten)

	second, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.CardsWritten)
	assert.Equal(t, 1, boards.updateCardCalls)
}

func TestSweepSkipsDisallowedBoards(t *testing.T) {
	boards := &mockBoardClient{
		getBoardsFunc: func(ctx context.Context) ([]board.Board, error) {
			return []board.Board{{ID: "b2"}}, nil
		},
		getCardsFunc: func(ctx context.Context, boardID string) ([]board.Card, error) {
			t.Fatal("cards of a disallowed board must not be fetched")
			return nil, nil
		},
	}

	sweeper := newSweepFixture(t, &config.TrelloConfig{Boards: []string{"b1"}}, &mockTicketRepository{}, boards)

	res, err := sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.Boards)
	assert.Zero(t, res.Cards)
}
