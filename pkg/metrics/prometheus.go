package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Horoscope sources.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Registry owns the service's Prometheus collectors.
type Registry struct {
	reg          *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	horoscopes   *prometheus.CounterVec
	tokens       *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// NewRegistry builds a registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		horoscopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horoscopes_generated_total",
			Help: "Horoscopes returned, by generator source.",
		}, []string{"source"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Tokens consumed by the primary generator.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result.",
		}, []string{"result"}),
	}
	r.reg.MustRegister(r.httpRequests, r.httpDuration, r.horoscopes, r.tokens, r.cacheLookups)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Registry) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveHoroscope(source string, usage TokenUsage) {
	r.horoscopes.WithLabelValues(source).Inc()
	if usage.IsZero() {
		return
	}
	r.tokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	r.tokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}

func (r *Registry) ObserveCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}
