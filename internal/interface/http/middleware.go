package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-horoscope/internal/infra/config"
)

// errorHandlingMiddleware answers the last recorded error. JSON callers get
// the error envelope; page callers get the form again with the message.
func errorHandlingMiddleware(logger *slog.Logger, page func() pageData) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		attrs := []any{
			"code", httpErr.Code,
			"status", httpErr.Status,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		}
		if httpErr.Err != nil {
			attrs = append(attrs, "error", httpErr.Err)
		}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("horoscope request failed", attrs...)
		} else {
			logger.Warn("horoscope request rejected", attrs...)
		}

		if httpErr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(httpErr.RetryAfter.Seconds()))))
		}
		if wantsJSON(c) || page == nil {
			c.JSON(httpErr.Status, httpErr.envelope())
			return
		}
		data := page()
		data.Error = httpErr.Message
		c.HTML(httpErr.Status, indexTemplate, data)
	}
}

// rateLimitMiddleware throttles horoscope generation per client IP.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, wait := limiter.allow(ip, time.Now())
		if ok {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "retry_after", wait)
		abortWithError(c, &HTTPError{
			Status:     http.StatusTooManyRequests,
			Code:       codeRateLimited,
			Message:    "Too many horoscope requests, try again shortly",
			RetryAfter: wait,
		})
	}
}

// ipRateLimiter is a token bucket per client IP. Idle buckets are dropped.
type ipRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	perToken time.Duration
	burst    float64
	idle     time.Duration
}

type bucket struct {
	tokens float64
	seen   time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig) *ipRateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &ipRateLimiter{
		buckets:  make(map[string]*bucket),
		perToken: time.Minute / time.Duration(cfg.RequestsPerMinute),
		burst:    float64(burst),
		idle:     5 * time.Minute,
	}
}

// allow spends one token for ip. When none is left it reports how long the
// caller has to wait for the next one.
func (l *ipRateLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdleLocked(now)
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{tokens: l.burst, seen: now}
		l.buckets[ip] = b
	}
	if elapsed := now.Sub(b.seen); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+float64(elapsed)/float64(l.perToken))
	}
	b.seen = now

	if b.tokens < 1 {
		return false, time.Duration((1 - b.tokens) * float64(l.perToken))
	}
	b.tokens--
	return true, 0
}

func (l *ipRateLimiter) evictIdleLocked(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.seen) > l.idle {
			delete(l.buckets, ip)
		}
	}
}
