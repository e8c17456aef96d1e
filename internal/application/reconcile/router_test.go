package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardsync/internal/domain/board"
	"boardsync/internal/domain/ticket"
	apperrors "boardsync/internal/shared/errors"
)

func newRouterFixture(repo *mockTicketRepository, boards *mockBoardClient) *Router {
	f := newEngineFixture(repo, boards, nil, nil)
	return NewRouter(f.engine, mockLogger{})
}

func TestDispatchUnknownKind(t *testing.T) {
	router := newRouterFixture(&mockTicketRepository{}, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{Kind: "somethingElse"})

	require.Error(t, err)
	assert.True(t, apperrors.IsRoutingError(err))
}

func TestDispatchIgnoredKinds(t *testing.T) {
	router := newRouterFixture(&mockTicketRepository{}, &mockBoardClient{})

	for _, kind := range []board.Kind{
		board.KindLabelRemoved,
		board.KindCardCreated,
		board.KindCardDeleted,
		board.KindCommentUpdated,
		board.KindCommentDeleted,
	} {
		assert.NoError(t, router.Dispatch(context.Background(), &board.Event{Kind: kind}), string(kind))
	}
}

func TestDispatchMoveUpdatesTicket(t *testing.T) {
	tk := reconstructTicket(t, 1500, "Fix bug", "")
	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	router := newRouterFixture(repo, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{
		Kind:       board.KindCardUpdated,
		Actor:      "bob",
		Card:       board.CardRef{ShortLink: "abcd1234", Name: "#1500 - Fix bug"},
		ListBefore: &board.ListRef{Name: "To Do"},
		ListAfter:  &board.ListRef{Name: "Doing"},
	})

	require.NoError(t, err)
	assert.Equal(t, "doing", tk.Status().String())
	require.Len(t, repo.saveCalls, 1)
}

// Reordering a card within its list changes nothing on the ticket.
func TestDispatchPositionChangeIsNoop(t *testing.T) {
	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			t.Fatal("repository must not be queried")
			return nil, nil
		},
	}
	router := newRouterFixture(repo, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{
		Kind:       board.KindCardUpdated,
		Card:       board.CardRef{Name: "#1500 - Fix bug"},
		PosChanged: true,
	})

	require.NoError(t, err)
}

func TestDispatchCommentUpdatesTicket(t *testing.T) {
	tk := reconstructTicket(t, 1500, "Fix bug", "")
	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	router := newRouterFixture(repo, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{
		Kind:    board.KindCommentAdded,
		Actor:   "bob",
		Card:    board.CardRef{ShortLink: "abcd1234", Name: "#1500 - Fix bug"},
		Comment: "looks good to me",
	})

	require.NoError(t, err)
	require.Len(t, repo.saveCalls, 1)
	assert.Contains(t, repo.saveCalls[0].comment, "looks good to me")
}

// A comment carrying a provenance marker came from the sync itself and must
// not bounce back into the tracker.
func TestDispatchSelfAuthoredCommentIsNoop(t *testing.T) {
	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			t.Fatal("repository must not be queried")
			return nil, nil
		},
	}
	router := newRouterFixture(repo, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{
		Kind:    board.KindCommentAdded,
		Card:    board.CardRef{Name: "#1500 - Fix bug"},
		Comment: "[trac][By alice](http://localhost/ticket/1500)\nhello",
	})

	require.NoError(t, err)
	assert.Empty(t, repo.saveCalls)
}

func TestDispatchLabelAdded(t *testing.T) {
	tk := reconstructTicket(t, 1500, "Fix bug", "")
	repo := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, id int) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	router := newRouterFixture(repo, &mockBoardClient{})

	err := router.Dispatch(context.Background(), &board.Event{
		Kind:  board.KindLabelAdded,
		Actor: "bob",
		Card:  board.CardRef{Name: "#1500 - Fix bug"},
		Board: board.BoardRef{ID: "b1"},
		Label: "P1",
	})

	require.NoError(t, err)
	assert.Equal(t, "highest", tk.Priority())
}
