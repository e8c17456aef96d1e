package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/domain/ticket"
	vo "boardsync/internal/domain/ticket/valueobjects"
	"boardsync/internal/shared/config"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
)

type stubTicketRepository struct {
	tickets map[int]*ticket.Ticket
}

func (s *stubTicketRepository) GetByID(ctx context.Context, id int) (*ticket.Ticket, error) {
	if t, ok := s.tickets[id]; ok {
		return t, nil
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (s *stubTicketRepository) Insert(ctx context.Context, t *ticket.Ticket) error { return nil }
func (s *stubTicketRepository) Save(ctx context.Context, t *ticket.Ticket, author, comment string) error {
	return nil
}

// recordingBoardClient captures outbound comments.
type recordingBoardClient struct {
	stubBoardClient
	comments []string
}

func (r *recordingBoardClient) AddComment(ctx context.Context, cardID, text string) error {
	r.comments = append(r.comments, text)
	return nil
}

func newTrackerFixture(t *testing.T) (*TrackerHandler, *recordingBoardClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))

	tk, err := ticket.Reconstruct(1500, "Fix bug", vo.StatusNew, "alice", "", "", "", "",
		"https://trello.com/c/abcd1234/1500-fix-bug", nil, nil, "")
	require.NoError(t, err)

	repo := &stubTicketRepository{tickets: map[int]*ticket.Ticket{1500: tk}}
	boards := &recordingBoardClient{}
	resolver := reconcile.NewResolver(repo, boards, log)
	engine := reconcile.NewEngine(repo, boards, resolver, nil,
		&config.TrelloConfig{},
		&config.TrackerConfig{ProjectURL: "http://localhost/"}, log)

	return NewTrackerHandler(engine, repo, log), boards
}

func performNotify(handler *TrackerHandler, body string) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.POST("/tracker/notify", handler.HandleNotify)

	req := httptest.NewRequest(http.MethodPost, "/tracker/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNotifyChangedForwardsComment(t *testing.T) {
	handler, boards := newTrackerFixture(t)

	w := performNotify(handler, `{"event":"changed","ticket_id":1500,"author":"alice","comment":"please review"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, boards.comments, 1)
	assert.Equal(t, "[trac][By alice](http://localhost/ticket/1500)\nplease review", boards.comments[0])
}

// Notifications carrying a provenance marker originate from the sync and
// must not echo back to the board.
func TestNotifyChangedSelfAuthoredIsSilent(t *testing.T) {
	handler, boards := newTrackerFixture(t)

	w := performNotify(handler, `{"event":"changed","ticket_id":1500,"author":"alice","comment":"[trello] Added label P2"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, boards.comments)
}

func TestNotifyDeletedIsNoop(t *testing.T) {
	handler, boards := newTrackerFixture(t)

	w := performNotify(handler, `{"event":"deleted","ticket_id":1500}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, boards.comments)
}

func TestNotifyUnknownEventRejected(t *testing.T) {
	handler, _ := newTrackerFixture(t)

	w := performNotify(handler, `{"event":"archived","ticket_id":1500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifyUnknownTicket(t *testing.T) {
	handler, _ := newTrackerFixture(t)

	w := performNotify(handler, `{"event":"changed","ticket_id":2500,"comment":"x"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifyMissingFields(t *testing.T) {
	handler, _ := newTrackerFixture(t)

	w := performNotify(handler, `{"comment":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
