// Package http wires gin handlers, middleware, and routes into the public
// API surface of the service.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construlink/internal/interfaces/http/handlers"
	"construlink/internal/interfaces/http/middleware"
	"construlink/internal/interfaces/http/routes"
	"construlink/internal/shared/logger"
)

// Router holds the configured gin engine.
type Router struct {
	engine *gin.Engine
}

// RouterConfig carries the handlers and settings the router needs. Requests
// arrive pre-authenticated from the platform gateway, so there is no auth
// middleware here.
type RouterConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	PlanHandler         *handlers.PlanHandler
	UsageHandler        *handlers.UsageHandler
	AllowedOrigins      []string
	Logger              logger.Interface
}

func NewRouter(cfg *RouterConfig) *Router {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(cfg.Logger))
	engine.Use(middleware.CORS(cfg.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler: cfg.PlanHandler,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: cfg.SubscriptionHandler,
	})
	routes.SetupUsageRoutes(api, &routes.UsageRouteConfig{
		UsageHandler: cfg.UsageHandler,
	})

	return &Router{engine: engine}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
