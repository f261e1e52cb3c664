package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/ai-horoscope/internal/infra/config"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) (*http.Server, error) {
	gin.SetMode(gin.ReleaseMode)

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	assets, err := staticFS()
	if err != nil {
		return nil, fmt.Errorf("load static assets: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		requestMetrics(handler.metrics),
		errorHandlingMiddleware(handler.logger, handler.landingPage),
		corsMiddleware(cfg.HTTP.CORS),
	)

	router.GET("/", handler.Index)
	router.GET("/healthz", handler.Health)
	router.GET("/moon", handler.Moon)
	router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))
	router.POST("/horoscope", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger), handler.Horoscope)
	router.StaticFS("/static", http.FS(assets))

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}, nil
}

// requestID propagates the caller's request id or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds(), "request_id", c.GetString(requestIDKey))
	}
}

// requestMetrics records per-route counts and latency. Unmatched paths share one label.
func requestMetrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		registry.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
