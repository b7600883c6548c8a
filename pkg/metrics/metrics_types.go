package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analytics runtime
type Registry struct {
	// Algorithm Metrics
	AlgorithmRunsTotal        *prometheus.CounterVec
	AlgorithmDuration         *prometheus.HistogramVec
	AlgorithmRunsInFlight     *prometheus.GaugeVec
	AlgorithmTerminatedTotal  *prometheus.CounterVec
	AlgorithmIterations       *prometheus.HistogramVec
	AlgorithmNodesProcessed   *prometheus.CounterVec
	AlgorithmMemoryEstimation *prometheus.GaugeVec

	// Progress Metrics
	TaskProgressPercent *prometheus.GaugeVec
	TasksActive         prometheus.Gauge
	TasksFailedTotal    *prometheus.CounterVec

	// Catalog Metrics
	CatalogGraphsTotal        prometheus.Gauge
	CatalogNodesTotal         *prometheus.GaugeVec
	CatalogRelationshipsTotal *prometheus.GaugeVec
	CatalogOperationsTotal    *prometheus.CounterVec
	CatalogMutationsTotal     *prometheus.CounterVec

	// Sink Metrics
	SinkRowsWrittenTotal *prometheus.CounterVec
	SinkBytesWritten     *prometheus.CounterVec
	SinkWriteDuration    *prometheus.HistogramVec
	SinkErrorsTotal      *prometheus.CounterVec

	// Worker Metrics
	WorkerTasksTotal  *prometheus.CounterVec
	WorkerPanicsTotal prometheus.Counter

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)
