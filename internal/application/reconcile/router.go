package reconcile

import (
	"context"
	"fmt"

	"boardsync/internal/domain/board"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
)

// Router dispatches an inbound board event to the matching reconciliation
// handler. Routing failures are local to the single event; the next event
// is processed independently.
type Router struct {
	engine *Engine
	logger logger.Interface
}

func NewRouter(engine *Engine, log logger.Interface) *Router {
	return &Router{
		engine: engine,
		logger: log,
	}
}

// Dispatch routes the event by kind. Unknown kinds yield a routing error.
func (r *Router) Dispatch(ctx context.Context, ev *board.Event) error {
	switch ev.Kind {
	case board.KindLabelAdded:
		r.logger.Infow("handling board event", "kind", ev.Kind, "card", ev.Card.Name)
		return r.engine.AddLabel(ctx, *ev)

	case board.KindCardUpdated:
		r.logger.Infow("handling board event", "kind", ev.Kind, "card", ev.Card.Name)
		return r.cardUpdated(ctx, ev)

	case board.KindCommentAdded:
		r.logger.Infow("handling board event", "kind", ev.Kind, "card", ev.Card.Name)
		return r.commentAdded(ctx, ev)

	case board.KindLabelRemoved,
		board.KindCardCreated,
		board.KindCardDeleted,
		board.KindCommentUpdated,
		board.KindCommentDeleted:
		r.logger.Debugw("event kind not handled", "kind", ev.Kind)
		return nil

	default:
		return apperrors.NewRoutingError(fmt.Sprintf("unknown event kind %q", ev.Kind))
	}
}

func (r *Router) cardUpdated(ctx context.Context, ev *board.Event) error {
	switch {
	case ev.IsMove():
		_, err := r.engine.UpdateTicket(ctx, *ev, ev.ListAfter, "")
		return err
	case ev.PosChanged:
		// Reorder within a list, nothing to reconcile.
		return nil
	default:
		r.logger.Warnw("unsupported card update shape", "card", ev.Card.Name)
		return nil
	}
}

func (r *Router) commentAdded(ctx context.Context, ev *board.Event) error {
	if _, ok := DecodeID(ev.Card.Name); ok && IsSelfAuthored(ev.Comment) {
		// Anti-echo: the comment was written by the sync itself.
		return nil
	}
	_, err := r.engine.UpdateTicket(ctx, *ev, nil, ev.Comment)
	return err
}
