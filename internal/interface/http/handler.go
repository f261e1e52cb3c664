package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

const indexTemplate = "index.tmpl"

// Handler wires the HTTP transport to the horoscope service.
type Handler struct {
	svc     horoscope.Service
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc horoscope.Service, registry *metrics.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		metrics: registry,
		logger:  logger.With("component", "http.handler"),
	}
}

// Index renders the landing page with today's moon phase.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, h.landingPage())
}

func (h *Handler) landingPage() pageData {
	return pageData{Moon: h.svc.MoonPhase()}
}

// Horoscope accepts a birth profile as JSON or form data.
func (h *Handler) Horoscope(c *gin.Context) {
	var req horoscope.Request
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	source := metrics.SourcePrimary
	if res.Fallback {
		source = metrics.SourceFallback
	}
	h.metrics.ObserveHoroscope(source, res.Usage)
	c.Header("X-Horoscope-Source", source)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, res.Response)
		return
	}
	c.HTML(http.StatusOK, indexTemplate, resultPage(res, h.svc.MoonPhase()))
}

// Moon returns today's locally computed moon phase.
func (h *Handler) Moon(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"astronomy": h.svc.MoonPhase()})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// wantsJSON matches callers that asked for JSON or sent an XHR.
func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
