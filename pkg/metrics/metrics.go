package metrics

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run statuses used as label values
const (
	StatusSuccess    = "success"
	StatusError      = "error"
	StatusTerminated = "terminated"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}

	r.initAlgorithmMetrics()
	r.initProgressMetrics()
	r.initCatalogMetrics()
	r.initSinkMetrics()
	r.initWorkerMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// AlgorithmStarted marks a run as in flight
func (r *Registry) AlgorithmStarted(algorithm, mode string) {
	r.AlgorithmRunsInFlight.WithLabelValues(algorithm, mode).Inc()
}

// RecordAlgorithmRun records a finished run with its status and duration
func (r *Registry) RecordAlgorithmRun(algorithm, mode, status string, duration time.Duration) {
	r.AlgorithmRunsInFlight.WithLabelValues(algorithm, mode).Dec()
	r.AlgorithmRunsTotal.WithLabelValues(algorithm, mode, status).Inc()
	r.AlgorithmDuration.WithLabelValues(algorithm, mode).Observe(duration.Seconds())
	if status == StatusTerminated {
		r.AlgorithmTerminatedTotal.WithLabelValues(algorithm).Inc()
	}
}

// RecordIterations records how many iterations an iterative algorithm ran
func (r *Registry) RecordIterations(algorithm string, iterations int) {
	r.AlgorithmIterations.WithLabelValues(algorithm).Observe(float64(iterations))
}

// RecordNodesProcessed adds to the processed node counter
func (r *Registry) RecordNodesProcessed(algorithm string, n int) {
	r.AlgorithmNodesProcessed.WithLabelValues(algorithm).Add(float64(n))
}

// RecordMemoryEstimate records the upper bound of a memory estimation
func (r *Registry) RecordMemoryEstimate(algorithm string, maxBytes int64) {
	r.AlgorithmMemoryEstimation.WithLabelValues(algorithm).Set(float64(maxBytes))
}

// SetTaskProgress publishes the completion percentage of a task
func (r *Registry) SetTaskProgress(task string, percent float64) {
	r.TaskProgressPercent.WithLabelValues(task).Set(percent)
}

// TaskStarted increments the active task gauge
func (r *Registry) TaskStarted() { r.TasksActive.Inc() }

// TaskFinished decrements the active task gauge and counts failures
func (r *Registry) TaskFinished(task string, failed bool) {
	r.TasksActive.Dec()
	if failed {
		r.TasksFailedTotal.WithLabelValues(task).Inc()
	}
}

// RecordCatalogOperation counts a catalog operation (put, drop, replace, get)
func (r *Registry) RecordCatalogOperation(operation, status string) {
	r.CatalogOperationsTotal.WithLabelValues(operation, status).Inc()
}

// UpdateCatalogGraph publishes the size of a stored graph
func (r *Registry) UpdateCatalogGraph(graph string, nodes, relationships int) {
	r.CatalogNodesTotal.WithLabelValues(graph).Set(float64(nodes))
	r.CatalogRelationshipsTotal.WithLabelValues(graph).Set(float64(relationships))
}

// RemoveCatalogGraph drops the per-graph series of a dropped graph
func (r *Registry) RemoveCatalogGraph(graph string) {
	r.CatalogNodesTotal.DeleteLabelValues(graph)
	r.CatalogRelationshipsTotal.DeleteLabelValues(graph)
}

// RecordMutation counts a mutate-mode write into the catalog
func (r *Registry) RecordMutation(kind string) {
	r.CatalogMutationsTotal.WithLabelValues(kind).Inc()
}

// RecordSinkWrite records a write-mode export
func (r *Registry) RecordSinkWrite(sink string, rows int, bytes int64, duration time.Duration, err error) {
	if err != nil {
		r.SinkErrorsTotal.WithLabelValues(sink).Inc()
		return
	}
	r.SinkRowsWrittenTotal.WithLabelValues(sink).Add(float64(rows))
	if bytes > 0 {
		r.SinkBytesWritten.WithLabelValues(sink).Add(float64(bytes))
	}
	r.SinkWriteDuration.WithLabelValues(sink).Observe(duration.Seconds())
}

// RecordWorkerTask counts a worker pool task outcome
func (r *Registry) RecordWorkerTask(status string) {
	r.WorkerTasksTotal.WithLabelValues(status).Inc()
}

// RecordWorkerPanic counts a recovered worker panic
func (r *Registry) RecordWorkerPanic() { r.WorkerPanicsTotal.Inc() }

// UpdateSystemMetrics samples runtime statistics
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// SampleSystemMetrics refreshes runtime statistics every interval until ctx ends
func (r *Registry) SampleSystemMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.UpdateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.UpdateSystemMetrics()
		}
	}
}
