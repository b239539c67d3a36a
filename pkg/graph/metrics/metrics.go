package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Import pipeline metrics
	RowsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Total number of CSV rows processed, by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	ImportFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_files_total",
			Help: "Total number of uploaded files processed, by outcome",
		},
		[]string{"status"},
	)

	upsertDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "graph_upsert_duration_seconds",
			Help: "Time spent on single upsert round trips",
		},
		[]string{"target"},
	)

	// Graph metrics
	GraphNodeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_nodes_total",
			Help: "Total number of nodes in the graph",
		},
		[]string{"node_type"},
	)

	// Scraper metrics
	PagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_pages_fetched_total",
			Help: "Pages fetched per source",
		},
		[]string{"source"},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_fetch_errors_total",
			Help: "Fetch or parse failures per source",
		},
		[]string{"source"},
	)
)

// UpsertTimer starts a timer on the upsert duration histogram; target is
// "entity" or "relationship".
func UpsertTimer(target string) *prometheus.Timer {
	return prometheus.NewTimer(upsertDuration.WithLabelValues(target))
}
