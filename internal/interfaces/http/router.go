package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/domain/ticket"
	"boardsync/internal/infrastructure/ratelimit"
	"boardsync/internal/interfaces/http/handlers"
	"boardsync/internal/interfaces/http/middleware"
	sharedConfig "boardsync/internal/shared/config"
	"boardsync/internal/shared/logger"
)

// Router wires the HTTP surface: the webhook feed, the legacy update
// endpoint, and the health check.
type Router struct {
	engine         *gin.Engine
	webhookHandler *handlers.WebhookHandler
	trackerHandler *handlers.TrackerHandler
	healthHandler  *handlers.HealthHandler
}

func NewRouter(
	eventRouter *reconcile.Router,
	reconcileEngine *reconcile.Engine,
	sweeper *reconcile.Sweeper,
	tickets ticket.Repository,
	db *gorm.DB,
	limiter ratelimit.Limiter,
	trelloCfg *sharedConfig.TrelloConfig,
	mode string,
	log logger.Interface,
) *Router {
	gin.SetMode(ginMode(mode))

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	r := &Router{
		engine:         engine,
		webhookHandler: handlers.NewWebhookHandler(eventRouter, sweeper, log),
		trackerHandler: handlers.NewTrackerHandler(reconcileEngine, tickets, log),
		healthHandler:  handlers.NewHealthHandler(db),
	}

	r.setupRoutes(limiter, trelloCfg, log)
	return r
}

func (r *Router) setupRoutes(limiter ratelimit.Limiter, trelloCfg *sharedConfig.TrelloConfig, log logger.Interface) {
	r.engine.GET("/healthz", r.healthHandler.Handle)

	trusted := middleware.TrustedIPs(trelloCfg.TrustedIPs, log)

	guarded := r.engine.Group("/trello")
	guarded.Use(trusted)
	guarded.Use(middleware.RateLimit(limiter, log))
	{
		guarded.POST("/webhook", r.webhookHandler.HandleWebhook)
		guarded.HEAD("/webhook", r.webhookHandler.HandleValidation)
		guarded.POST("/update", r.webhookHandler.HandleUpdate)
	}

	tracker := r.engine.Group("/tracker")
	tracker.Use(trusted)
	{
		tracker.POST("/notify", r.trackerHandler.HandleNotify)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
