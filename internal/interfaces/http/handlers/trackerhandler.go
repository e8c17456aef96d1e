package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/domain/ticket"
	apperrors "boardsync/internal/shared/errors"
	"boardsync/internal/shared/logger"
	"boardsync/internal/shared/utils"
)

// TrackerHandler receives ticket lifecycle notifications from the issue
// tracker and forwards them to the board side.
type TrackerHandler struct {
	engine  *reconcile.Engine
	tickets ticket.Repository
	logger  logger.Interface
}

func NewTrackerHandler(engine *reconcile.Engine, tickets ticket.Repository, log logger.Interface) *TrackerHandler {
	return &TrackerHandler{
		engine:  engine,
		tickets: tickets,
		logger:  log.Named("tracker"),
	}
}

type trackerNotification struct {
	Event    string `json:"event" validate:"required,oneof=created changed deleted"`
	TicketID int    `json:"ticket_id" validate:"required,gt=0"`
	Author   string `json:"author"`
	Comment  string `json:"comment"`
}

// HandleNotify processes a ticket created/changed/deleted notification.
func (h *TrackerHandler) HandleNotify(c *gin.Context) {
	var req trackerNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("Invalid payload"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	t, err := h.tickets.GetByID(c.Request.Context(), req.TicketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	switch req.Event {
	case "created":
		err = h.engine.TicketCreated(c.Request.Context(), t)
	case "changed":
		err = h.engine.TicketChanged(c.Request.Context(), t, req.Comment, req.Author)
	case "deleted":
		err = h.engine.TicketDeleted(c.Request.Context(), t)
	}
	if err != nil {
		h.logger.Errorw("failed to process ticket notification",
			"event", req.Event,
			"ticket", req.TicketID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification processed", nil)
}
