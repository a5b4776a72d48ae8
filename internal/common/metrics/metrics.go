// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RankingsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_rankings_total",
			Help: "Rankings served, by sort order and cache outcome",
		},
		[]string{"order", "cache"},
	)

	RankingResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "restaurant_ranking_result_size",
			Help:    "Number of restaurants left after filtering",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 60},
		},
	)

	FiltersApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_filters_applied_total",
			Help: "Filters evaluated per ranking, by action",
		},
		[]string{"action"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_cache_errors_total",
			Help: "Ranking cache failures that fell back to recomputation",
		},
		[]string{"operation"},
	)

	LocationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_location_outcomes_total",
			Help: "Location resolutions by outcome",
		},
		[]string{"outcome"},
	)
)
