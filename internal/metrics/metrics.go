// Package metrics registers the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_quote_requests_total",
		Help: "Quote requests by trade type and outcome.",
	}, []string{"trade_type", "status"})

	QuoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "router_quote_duration_seconds",
		Help:    "Wall time of a single best-route quote.",
		Buckets: prometheus.DefBuckets,
	})

	QuoteRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_quote_rejections_total",
		Help: "Per-route quote failures by reason.",
	}, []string{"reason"})

	RoutesEvaluated = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "router_routes_evaluated",
		Help:    "Candidate routes enumerated per quote request.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	SplitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "router_split_duration_seconds",
		Help:    "Wall time of a split-distribution optimization.",
		Buckets: prometheus.DefBuckets,
	})

	PriceImpact = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_price_impact_bps",
		Help:    "Price impact of returned trades in basis points.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 300, 1000, 3000},
	}, []string{"severity"})

	PairsFetched = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "router_pairs_fetched",
		Help: "Pairs returned by the last backend fetch, per protocol.",
	}, []string{"protocol"})

	PairFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_pair_fetch_failures_total",
		Help: "Failed pair backend fetches, per protocol.",
	}, []string{"protocol"})

	PairCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "router_pair_cache_hits_total",
		Help: "Pair snapshot requests served from cache.",
	})

	PairCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "router_pair_cache_misses_total",
		Help: "Pair snapshot requests that went to the backend.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_http_request_duration_seconds",
		Help:    "HTTP request latency by path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)
