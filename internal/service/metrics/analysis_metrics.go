package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ResponseCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wavestage",
			Subsystem: "api",
			Name:      "response_cache_hits_total",
			Help:      "Rendered-response cache hits by view",
		},
		[]string{"view"},
	)

	ResponseCacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wavestage",
			Subsystem: "api",
			Name:      "response_cache_misses_total",
			Help:      "Rendered-response cache misses by view",
		},
		[]string{"view"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wavestage",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		},
		[]string{"view"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ResponseCacheHits, ResponseCacheMisses, RateLimited)
	})
}
