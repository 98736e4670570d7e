// Package router assembles the gin engine for the money API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/money/backend/internal/infrastructure/logger"
	"github.com/money/backend/internal/interfaces/http/handler"
	"github.com/money/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds engine settings
type Config struct {
	APIVersion   string
	MaxBodySize  int64
	Tracing      middleware.TracingConfig
	HealthChecks map[string]handler.HealthCheck
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	cfg        Config
	registrars []RouteRegistrar
}

// New creates the engine with recovery, request logging, tracing and the
// body limit installed
func New(cfg Config, log *zap.Logger) *Router {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = 1 << 20
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanAttributes(),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	return &Router{engine: engine, cfg: cfg}
}

// Register adds a RouteRegistrar to be registered on Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts /health and every registrar under /api/<version>
func (r *Router) Setup() *gin.Engine {
	r.engine.GET("/health", handler.NewHealthHandler(r.cfg.HealthChecks).Health)

	api := r.engine.Group("/api/" + r.cfg.APIVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return r.engine
}

// NewAPI wires the finance handlers onto a new engine
func NewAPI(cfg Config, log *zap.Logger, commands handler.CommandBus, queries handler.QueryBus) *gin.Engine {
	return New(cfg, log).
		Register(
			handler.NewOutcomeHandler(commands),
			handler.NewCategoryHandler(commands, queries),
			handler.NewExpenseTemplateHandler(commands, queries),
			handler.NewMonthHandler(queries),
		).
		Setup()
}
