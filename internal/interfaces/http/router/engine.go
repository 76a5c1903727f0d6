package router

import (
	"fmt"
	"net/http"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/logger"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/handler"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngineConfig holds what the HTTP engine needs besides the handlers
type EngineConfig struct {
	ServiceName    string
	TracingEnabled bool
	Logger         *zap.Logger
	TrustedProxies []string
	CORS           middleware.CORSConfig
	MaxBodyBytes   int64

	// Session resolves the office of every API request. Required.
	Session gin.HandlerFunc
	// RateLimiter is optional; when set, requests are limited per office
	RateLimiter *middleware.RateLimiter
	// HTTPObserver is optional; it receives every finished request
	HTTPObserver middleware.HTTPObserver
	// MetricsHandler is optional; when set it is served on /metrics
	MetricsHandler http.Handler
}

// NewEngine builds the gin engine. Middleware runs in this order:
//
//  1. Recovery and request logging (assigns the request ID)
//  2. Tracing, span error marking and request metrics
//  3. Security headers, CORS and the body size limit
//  4. For /api routes: session, span attributes and rate limiting
//
// /health and /metrics are served outside the API prefix without a session.
func NewEngine(cfg EngineConfig, system *handler.SystemHandler, h Handlers) (*gin.Engine, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("router: session middleware is required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("router: trusted proxies: %w", err)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(cfg.HTTPObserver))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.GET("/health", system.Health)
	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(cfg.Session, middleware.SessionSpanAttributes())
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	r.Register(APIRoutes(h)...)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "The page you requested does not exist", c.GetString("request_id")))
	})

	return engine, nil
}
