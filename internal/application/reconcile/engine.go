package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boardsync/internal/domain/board"
	"boardsync/internal/domain/ticket"
	vo "boardsync/internal/domain/ticket/valueobjects"
	"boardsync/internal/shared/config"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
)

// Engine owns the state-transition logic of the sync: given a parsed event
// and resolved identities it computes the target state of the peer entity
// and issues the write. All writes flow through here.
type Engine struct {
	tickets  ticket.Repository
	boards   board.Client
	resolver *Resolver
	tx       TransactionManager
	trello   *config.TrelloConfig
	tracker  *config.TrackerConfig
	logger   logger.Interface
}

func NewEngine(
	tickets ticket.Repository,
	boards board.Client,
	resolver *Resolver,
	tx TransactionManager,
	trello *config.TrelloConfig,
	tracker *config.TrackerConfig,
	log logger.Interface,
) *Engine {
	return &Engine{
		tickets:  tickets,
		boards:   boards,
		resolver: resolver,
		tx:       tx,
		trello:   trello,
		tracker:  tracker,
		logger:   log,
	}
}

// UpdateTicket reconciles a ticket against the card state carried by an
// event. A card whose title decodes to no ticket id is silently skipped:
// there is nothing to update. The optional list triggers a status
// transition; the comment is prepended with the provenance marker and a
// card back-link before the attributed save.
func (e *Engine) UpdateTicket(ctx context.Context, ev board.Event, list *board.ListRef, comment string) (*ticket.Ticket, error) {
	id, ok := DecodeID(ev.Card.Name)
	if !ok {
		e.logger.Debugw("card has no ticket id, nothing to update", "card", ev.Card.Name)
		return nil, nil
	}

	t, err := e.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("card %q references ticket %d which does not exist", ev.Card.Name, id))
		}
		return nil, err
	}

	author := ev.Actor
	if author == "" {
		author = t.Owner()
	}

	if list != nil {
		t.SetStatus(vo.StatusForList(t.Status(), list.Name))
	}
	t.SetOwner(author)
	t.ClearResolution()
	t.SetPeerLink(ev.Card.URL())
	t.SetSummary(CleanSummary(ev.Card.Name))
	if est, ok := DecodeEstimate(ev.Card.Name); ok {
		t.SetExpectedPoints(est)
	}
	if spent, ok := DecodeTimeSpent(ev.Card.Name); ok {
		t.SetActualPoints(spent)
	}

	change := fmt.Sprintf("%s Changed status: [[%s|%s]]\n%s",
		MarkerFromBoard, ev.Card.URL(), ev.Card.Name, comment)
	if err := e.tickets.Save(ctx, t, author, change); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateCard recomputes the canonical card name and description from the
// ticket and writes to the board only when either differs. Repeated calls
// with unchanged ticket state issue no writes.
func (e *Engine) UpdateCard(ctx context.Context, card *board.Card, t *ticket.Ticket) (bool, error) {
	name := e.CardName(t)
	desc := e.CardDescription(t)
	if card.Name == name && card.Desc == desc {
		return false, nil
	}

	if err := e.boards.UpdateCard(ctx, card.ID, name, desc); err != nil {
		return false, err
	}
	card.Name = name
	card.Desc = desc
	return true, nil
}

// AddLabel handles a label-added event. A recognized label merges its field
// updates into the ticket, creating ticket and peer card transactionally
// when the ticket does not exist yet and the originating board may create
// tickets. Unrecognized labels land in keywords. Existing tickets get an
// attributed save noting the label change.
func (e *Engine) AddLabel(ctx context.Context, ev board.Event) error {
	t, err := e.resolver.TicketForCard(ctx, ev.Card)
	if err != nil {
		return err
	}

	if mapped := ApplyLabel(t, ev.Label); mapped && !t.Exists() {
		if !e.trello.CreateAllowed(ev.Board.ID) {
			// Policy rejection: must not create tickets from
			// unauthorized sources.
			e.logger.Debugw("ticket creation not allowed from board", "board", ev.Board.ID)
			return nil
		}
		err := e.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := e.tickets.Insert(txCtx, t); err != nil {
				return err
			}
			return e.ensurePeerCard(txCtx, t, ev.Board.ID)
		})
		if err != nil {
			return err
		}
	}

	if !t.Exists() {
		return nil
	}
	return e.tickets.Save(ctx, t, ev.Actor, MarkerFromBoard+" Added label "+ev.Label)
}

// ensurePeerCard locates or creates the peer card for a newly qualifying
// ticket on the originating board: an existing card whose title decodes to
// the ticket id is updated in place, otherwise a card is created in the
// board's "new"-prefixed list. The discovered or created link is recorded
// on the ticket.
func (e *Engine) ensurePeerCard(ctx context.Context, t *ticket.Ticket, boardID string) error {
	cards, err := e.boards.GetCards(ctx, boardID)
	if err != nil {
		return err
	}
	for i := range cards {
		c := &cards[i]
		if id, ok := DecodeID(c.Name); ok && id == t.ID() {
			t.SetPeerLink(c.URL())
			_, err := e.UpdateCard(ctx, c, t)
			return err
		}
	}

	list, err := e.findNewList(ctx, boardID)
	if err != nil {
		return err
	}
	if list == nil {
		e.logger.Warnw("board has no new list, peer card not created", "board", boardID, "ticket", t.ID())
		return nil
	}

	card, err := e.boards.CreateCard(ctx, list.ID, e.CardName(t), e.CardDescription(t))
	if err != nil {
		return err
	}
	t.SetPeerLink(card.URL())
	return nil
}

// TicketCreated creates the peer card for a freshly created ticket in the
// "new"-prefixed list of the board mapped to the ticket's component.
func (e *Engine) TicketCreated(ctx context.Context, t *ticket.Ticket) error {
	boardID := e.tracker.BoardForComponent(t.Component())
	if boardID == "" {
		e.logger.Warnw("no board mapped for component", "component", t.Component(), "ticket", t.ID())
		return nil
	}
	if !e.trello.BoardAllowed(boardID) {
		e.logger.Warnw("mapped board is not allow-listed", "board", boardID, "ticket", t.ID())
		return nil
	}

	list, err := e.findNewList(ctx, boardID)
	if err != nil {
		return err
	}
	if list == nil {
		e.logger.Warnw("board has no new list, card not created", "board", boardID, "ticket", t.ID())
		return nil
	}

	_, err = e.boards.CreateCard(ctx, list.ID, e.CardName(t), e.CardDescription(t))
	return err
}

// TicketChanged forwards an attributed ticket comment to the peer card.
// Comments the sync wrote itself are never forwarded back.
func (e *Engine) TicketChanged(ctx context.Context, t *ticket.Ticket, comment, author string) error {
	if IsSelfAuthored(comment) {
		return nil
	}

	card, err := e.resolver.CardForTicket(ctx, t, author)
	if err != nil {
		return err
	}
	if card == nil {
		e.logger.Warnw("no card found for ticket", "ticket", t.ID())
		return nil
	}

	e.logger.Infow("forwarding ticket comment to board", "ticket", t.ID(), "author", author)
	text := fmt.Sprintf("%s[By %s](%s)\n%s",
		MarkerFromTracker, author, e.ticketURL(t.ID()), comment)
	return e.boards.AddComment(ctx, card.ID, text)
}

// TicketDeleted is deliberately a no-op: tickets are never deleted by peer
// action.
func (e *Engine) TicketDeleted(ctx context.Context, t *ticket.Ticket) error {
	e.logger.Debugw("ticket deleted, no peer action", "ticket", t.ID())
	return nil
}

// CardName is the canonical card title derived from the ticket.
func (e *Engine) CardName(t *ticket.Ticket) string {
	return EncodeTitle(t)
}

// CardDescription is the canonical card body: a ticket back-reference,
// a blank line, then the ticket description with sync-authored lines
// filtered out.
func (e *Engine) CardDescription(t *ticket.Ticket) string {
	desc := fmt.Sprintf("[Trac #%d](%s)\n\n%s",
		t.ID(), e.ticketURL(t.ID()), FilterSelfAuthoredLines(t.Description()))
	return strings.TrimSpace(desc)
}

func (e *Engine) ticketURL(id int) string {
	return e.tracker.ProjectURL + "ticket/" + strconv.Itoa(id)
}

func (e *Engine) findNewList(ctx context.Context, boardID string) (*board.List, error) {
	lists, err := e.boards.GetLists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if strings.HasPrefix(strings.ToLower(lists[i].Name), "new") {
			return &lists[i], nil
		}
	}
	return nil, nil
}
