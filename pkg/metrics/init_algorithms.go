package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_algorithm_runs_total",
			Help: "Total number of algorithm executions",
		},
		[]string{"algorithm", "mode", "status"},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gds_algorithm_duration_seconds",
			Help:    "Algorithm execution duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"algorithm", "mode"},
	)

	r.AlgorithmRunsInFlight = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gds_algorithm_runs_in_flight",
			Help: "Number of algorithm executions currently running",
		},
		[]string{"algorithm", "mode"},
	)

	r.AlgorithmTerminatedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_algorithm_terminated_total",
			Help: "Total number of algorithm executions stopped by the termination flag",
		},
		[]string{"algorithm"},
	)

	r.AlgorithmIterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gds_algorithm_iterations",
			Help:    "Iterations performed by iterative algorithms",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"algorithm"},
	)

	r.AlgorithmNodesProcessed = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_algorithm_nodes_processed_total",
			Help: "Nodes processed by algorithm computations",
		},
		[]string{"algorithm"},
	)

	r.AlgorithmMemoryEstimation = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gds_algorithm_memory_estimate_bytes",
			Help: "Upper bound of the last memory estimation per algorithm",
		},
		[]string{"algorithm"},
	)
}
