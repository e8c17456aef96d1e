package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/domain/board"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
	"boardsync/internal/shared/utils"
)

// WebhookHandler receives board notifications and feeds them to the event
// router. The update endpoint accepts the same payload shape; called without
// a body it runs the full reconciliation sweep instead.
type WebhookHandler struct {
	router  *reconcile.Router
	sweeper *reconcile.Sweeper
	logger  logger.Interface
}

func NewWebhookHandler(router *reconcile.Router, sweeper *reconcile.Sweeper, log logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		router:  router,
		sweeper: sweeper,
		logger:  log.Named("webhook"),
	}
}

type memberPayload struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type boardRefPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listRefPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cardRefPayload struct {
	ID        string `json:"id"`
	ShortLink string `json:"shortLink"`
	Name      string `json:"name"`
}

type labelRefPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// oldPayload carries the previous values of the fields an update changed.
// Its presence tells a card-updated event apart from a move or a reorder.
type oldPayload struct {
	Pos  *float64 `json:"pos"`
	Name *string  `json:"name"`
	Desc *string  `json:"desc"`
}

type actionDataPayload struct {
	Board      *boardRefPayload `json:"board"`
	Card       *cardRefPayload  `json:"card"`
	List       *listRefPayload  `json:"list"`
	ListBefore *listRefPayload  `json:"listBefore"`
	ListAfter  *listRefPayload  `json:"listAfter"`
	Label      *labelRefPayload `json:"label"`
	Old        *oldPayload      `json:"old"`
	Text       string           `json:"text"`
}

type actionPayload struct {
	Type          string            `json:"type"`
	MemberCreator memberPayload     `json:"memberCreator"`
	Data          actionDataPayload `json:"data"`
}

type webhookPayload struct {
	Action actionPayload `json:"action"`
}

// HandleWebhook processes a board notification. An empty body is answered
// with a plain acknowledgement so webhook registration probes succeed.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if len(body) == 0 {
		c.String(http.StatusOK, "No body available")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warnw("failed to decode webhook payload", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("Invalid payload"))
		return
	}

	ev := toEvent(&payload)
	if err := h.router.Dispatch(c.Request.Context(), ev); err != nil {
		if apperrors.IsRoutingError(err) {
			h.logger.Warnw("unroutable event",
				"kind", ev.Kind,
				"card", ev.Card.Name,
				"error", err)
		} else {
			h.logger.Errorw("failed to process event",
				"kind", ev.Kind,
				"card", ev.Card.Name,
				"error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Event processed", nil)
}

// HandleUpdate serves the bulk endpoint: a posted payload is processed like
// a webhook notification, an empty body runs the full reconciliation sweep.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	if c.Request.ContentLength != 0 {
		h.HandleWebhook(c)
		return
	}

	result, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorw("sweep failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sweep completed", result)
}

// HandleValidation answers the HEAD probe the board service sends when a
// webhook is registered.
func (h *WebhookHandler) HandleValidation(c *gin.Context) {
	c.Status(http.StatusOK)
}

// toEvent maps the wire payload to a domain event. Unknown action types are
// carried through and rejected by the router.
func toEvent(payload *webhookPayload) *board.Event {
	action := payload.Action

	actor := action.MemberCreator.Username
	if actor == "" {
		actor = action.MemberCreator.FullName
	}

	ev := &board.Event{
		Kind:    board.Kind(action.Type),
		Actor:   actor,
		Comment: action.Data.Text,
	}

	if action.Data.Card != nil {
		ev.Card = board.CardRef{
			ID:        action.Data.Card.ID,
			ShortLink: action.Data.Card.ShortLink,
			Name:      action.Data.Card.Name,
		}
	}
	if action.Data.Board != nil {
		ev.Board = board.BoardRef{
			ID:   action.Data.Board.ID,
			Name: action.Data.Board.Name,
		}
	}
	if action.Data.Label != nil {
		ev.Label = action.Data.Label.Name
	}
	if action.Data.ListBefore != nil {
		ev.ListBefore = &board.ListRef{
			ID:   action.Data.ListBefore.ID,
			Name: action.Data.ListBefore.Name,
		}
	}
	if action.Data.ListAfter != nil {
		ev.ListAfter = &board.ListRef{
			ID:   action.Data.ListAfter.ID,
			Name: action.Data.ListAfter.Name,
		}
	}
	if action.Data.Old != nil && action.Data.Old.Pos != nil {
		ev.PosChanged = true
	}

	return ev
}
