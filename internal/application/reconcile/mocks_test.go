package reconcile

import (
	"context"

	"boardsync/internal/domain/board"
	"boardsync/internal/domain/ticket"
	"boardsync/internal/shared/logger"
)

type mockTicketRepository struct {
	getByIDFunc func(ctx context.Context, id int) (*ticket.Ticket, error)
	insertFunc  func(ctx context.Context, t *ticket.Ticket) error
	saveFunc    func(ctx context.Context, t *ticket.Ticket, author, comment string) error

	saveCalls   []savedChange
	insertCalls int
}

type savedChange struct {
	ticketID int
	author   string
	comment  string
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id int) (*ticket.Ticket, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTicketRepository) Insert(ctx context.Context, t *ticket.Ticket) error {
	m.insertCalls++
	if m.insertFunc != nil {
		return m.insertFunc(ctx, t)
	}
	return t.SetID(1501)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket, author, comment string) error {
	m.saveCalls = append(m.saveCalls, savedChange{ticketID: t.ID(), author: author, comment: comment})
	if m.saveFunc != nil {
		return m.saveFunc(ctx, t, author, comment)
	}
	return nil
}

type mockBoardClient struct {
	getBoardsFunc   func(ctx context.Context) ([]board.Board, error)
	getCardsFunc    func(ctx context.Context, boardID string) ([]board.Card, error)
	getListsFunc    func(ctx context.Context, boardID string) ([]board.List, error)
	searchCardsFunc func(ctx context.Context, query string) ([]board.Card, error)
	createCardFunc  func(ctx context.Context, listID, name, desc string) (*board.Card, error)
	updateCardFunc  func(ctx context.Context, cardID, name, desc string) error
	addCommentFunc  func(ctx context.Context, cardID, text string) error

	updateCardCalls int
	createCardCalls int
	addCommentCalls int
}

func (m *mockBoardClient) GetBoards(ctx context.Context) ([]board.Board, error) {
	return m.getBoardsFunc(ctx)
}

func (m *mockBoardClient) GetCards(ctx context.Context, boardID string) ([]board.Card, error) {
	return m.getCardsFunc(ctx, boardID)
}

func (m *mockBoardClient) GetLists(ctx context.Context, boardID string) ([]board.List, error) {
	return m.getListsFunc(ctx, boardID)
}

func (m *mockBoardClient) SearchCards(ctx context.Context, query string) ([]board.Card, error) {
	return m.searchCardsFunc(ctx, query)
}

func (m *mockBoardClient) CreateCard(ctx context.Context, listID, name, desc string) (*board.Card, error) {
	m.createCardCalls++
	return m.createCardFunc(ctx, listID, name, desc)
}

func (m *mockBoardClient) UpdateCard(ctx context.Context, cardID, name, desc string) error {
	m.updateCardCalls++
	if m.updateCardFunc != nil {
		return m.updateCardFunc(ctx, cardID, name, desc)
	}
	return nil
}

func (m *mockBoardClient) AddComment(ctx context.Context, cardID, text string) error {
	m.addCommentCalls++
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, cardID, text)
	}
	return nil
}

type mockTxManager struct {
	runCalls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runCalls++
	return fn(ctx)
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, args ...any)                   {}
func (mockLogger) Info(msg string, args ...any)                    {}
func (mockLogger) Warn(msg string, args ...any)                    {}
func (mockLogger) Error(msg string, args ...any)                   {}
func (m mockLogger) With(args ...any) logger.Interface             { return m }
func (m mockLogger) Named(name string) logger.Interface            { return m }
func (mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
