// Package metrics holds the process-wide Prometheus collectors. The
// dashboard server exposes them on /metrics; CLI commands update them
// too but never serve them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twiga_fetch_total",
		Help: "Remote fetches issued, by operation.",
	}, []string{"operation"})

	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twiga_fetch_errors_total",
		Help: "Remote fetches that failed, by operation.",
	}, []string{"operation"})

	DroppedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "twiga_flatten_dropped_rows_total",
		Help: "Flattened rows dropped because the event timestamp did not parse.",
	})

	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twiga_cache_hits_total",
		Help: "Fetches answered from the TTL cache, by operation.",
	}, []string{"operation"})

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twiga_cache_misses_total",
		Help: "Fetches that went to the server, by operation.",
	}, []string{"operation"})
)

// Register attaches every collector to the given registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(FetchTotal, FetchErrors, DroppedRows, CacheHits, CacheMisses)
}
