package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initProgressMetrics() {
	r.TaskProgressPercent = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gds_task_progress_percent",
			Help: "Completion percentage of running progress tasks",
		},
		[]string{"task"},
	)

	r.TasksActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_tasks_active",
			Help: "Number of progress tasks currently open",
		},
	)

	r.TasksFailedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_tasks_failed_total",
			Help: "Total number of progress tasks ended with failure",
		},
		[]string{"task"},
	)
}

func (r *Registry) initCatalogMetrics() {
	r.CatalogGraphsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_catalog_graphs_total",
			Help: "Number of graphs held in the catalog",
		},
	)

	r.CatalogNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gds_catalog_nodes_total",
			Help: "Node count per catalog graph",
		},
		[]string{"graph"},
	)

	r.CatalogRelationshipsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gds_catalog_relationships_total",
			Help: "Relationship count per catalog graph",
		},
		[]string{"graph"},
	)

	r.CatalogOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation", "status"},
	)

	r.CatalogMutationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_catalog_mutations_total",
			Help: "Total number of mutate-mode writes into catalog graphs",
		},
		[]string{"kind"},
	)
}

func (r *Registry) initSinkMetrics() {
	r.SinkRowsWrittenTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_sink_rows_written_total",
			Help: "Result rows exported by write mode",
		},
		[]string{"sink"},
	)

	r.SinkBytesWritten = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_sink_bytes_written_total",
			Help: "Bytes exported by write mode",
		},
		[]string{"sink"},
	)

	r.SinkWriteDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gds_sink_write_duration_seconds",
			Help:    "Write-mode export duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60},
		},
		[]string{"sink"},
	)

	r.SinkErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_sink_errors_total",
			Help: "Failed write-mode exports",
		},
		[]string{"sink"},
	)
}

func (r *Registry) initWorkerMetrics() {
	r.WorkerTasksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gds_worker_tasks_total",
			Help: "Tasks executed by worker pools",
		},
		[]string{"status"},
	)

	r.WorkerPanicsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gds_worker_panics_total",
			Help: "Panics recovered inside worker pools",
		},
	)
}

func (r *Registry) initSystemMetrics() {
	r.UptimeSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_uptime_seconds",
			Help: "Time since the process started in seconds",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_goroutines",
			Help: "Number of goroutines",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)

	r.MemorySysBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gds_memory_sys_bytes",
			Help: "Total bytes of memory obtained from the OS",
		},
	)
}
