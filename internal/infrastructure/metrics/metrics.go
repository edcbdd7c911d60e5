package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TransactionsIngested counts records actually persisted by the
	// ingestion pipeline.
	TransactionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcard_transactions_ingested_total",
		Help: "Total number of new transactions persisted",
	})

	// TransactionsDeduplicated counts batch records skipped because their
	// fingerprint was already stored.
	TransactionsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcard_transactions_deduplicated_total",
		Help: "Total number of duplicate transactions skipped during ingestion",
	})

	// UpstreamRequests counts calls to the upstream banking API by
	// endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankcard_upstream_requests_total",
			Help: "Total upstream banking API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration observes upstream call latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankcard_upstream_request_duration_seconds",
			Help:    "Upstream banking API request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
