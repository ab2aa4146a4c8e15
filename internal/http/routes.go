package http

import (
	"crypto/ed25519"

	"discord_rps/internal/http/handlers"
	"discord_rps/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is what the routes need from the rest of the service.
type Deps struct {
	Router    handlers.InteractionRouter
	FollowUps handlers.Scheduler
	PublicKey ed25519.PublicKey
	Sessions  interface{ Len() int }
	// Matches is nil when match history is disabled
	Matches handlers.MatchLister
	// Checks are pinged by /readyz
	Checks  map[string]handlers.Pinger
	Version string
}

// NewEngine builds the gin engine with the standard middleware stack.
func NewEngine(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestContext(), middleware.Metrics())
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	h := handlers.NewHandler(deps.Router, deps.FollowUps, deps.Matches)
	healthHandler := handlers.NewHealthHandler(deps.Sessions, deps.Version, deps.Checks)

	// Health checks and metrics (no signature)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Discord interactions endpoint
	r.POST("/interactions", middleware.VerifySignature(deps.PublicKey), h.Interactions)

	// Match history
	r.GET("/users/:id/matches", h.UserMatches)
}
