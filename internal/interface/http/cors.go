package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-horoscope/internal/infra/config"
)

// corsPolicy is the configured CORS policy with its header values joined once.
type corsPolicy struct {
	anyOrigin bool
	origins   []string
	methods   map[string]bool
	allow     string
	headers   string
	expose    string
	maxAge    string
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{
		origins: cfg.AllowOrigins,
		methods: make(map[string]bool, len(cfg.AllowMethods)),
		headers: strings.Join(cfg.AllowHeaders, ", "),
		expose:  strings.Join(cfg.ExposeHeaders, ", "),
	}
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			p.anyOrigin = true
		}
	}
	methods := make([]string, 0, len(cfg.AllowMethods))
	for _, m := range cfg.AllowMethods {
		m = strings.ToUpper(strings.TrimSpace(m))
		p.methods[m] = true
		methods = append(methods, m)
	}
	p.allow = strings.Join(methods, ", ")
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}
	return p
}

// origin returns the Access-Control-Allow-Origin value for a request, or ""
// when the origin is not allowed.
func (p corsPolicy) origin(requestOrigin string) string {
	if p.anyOrigin {
		return "*"
	}
	for _, candidate := range p.origins {
		if requestOrigin != "" && strings.EqualFold(candidate, requestOrigin) {
			return requestOrigin
		}
	}
	return ""
}

// corsMiddleware applies the policy. Preflights are answered here; a
// preflight for a method outside the policy gets no allow headers.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	policy := newCORSPolicy(cfg)
	return func(c *gin.Context) {
		requestOrigin := c.GetHeader("Origin")
		if requestOrigin == "" {
			c.Next()
			return
		}

		headers := c.Writer.Header()
		if !policy.anyOrigin {
			headers.Add("Vary", "Origin")
		}
		allowed := policy.origin(requestOrigin)

		requested := c.GetHeader("Access-Control-Request-Method")
		if c.Request.Method == http.MethodOptions && requested != "" {
			if allowed != "" && policy.methods[strings.ToUpper(requested)] {
				headers.Set("Access-Control-Allow-Origin", allowed)
				headers.Set("Access-Control-Allow-Methods", policy.allow)
				if policy.headers != "" {
					headers.Set("Access-Control-Allow-Headers", policy.headers)
				}
				if policy.maxAge != "" {
					headers.Set("Access-Control-Max-Age", policy.maxAge)
				}
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if allowed != "" {
			headers.Set("Access-Control-Allow-Origin", allowed)
			if policy.expose != "" {
				headers.Set("Access-Control-Expose-Headers", policy.expose)
			}
		}
		c.Next()
	}
}
