// Package metrics provides Prometheus metrics for the cheat sheet tier service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Board mutations
	movesApplied    prometheus.Counter
	movesDuplicate  prometheus.Counter
	manualRankEdits prometheus.Counter
	tiersCreated    prometheus.Counter

	// Board state
	tierCount   prometheus.Gauge
	playerCount prometheus.Gauge

	// Persistence
	saves            prometheus.Counter
	saveFailures     prometheus.Counter
	loadCorruptions  prometheus.Counter
	danglingDropped  prometheus.Counter
	storageReadMs    prometheus.Histogram
	storageWriteMs   prometheus.Histogram
	saveDebounceHits prometheus.Counter

	// Materializer
	revealBatches   prometheus.Counter
	revealedPlayers prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors by component
	errorsByComponent *prometheus.CounterVec

	// Process health
	systemMemoryBytes prometheus.Gauge
	systemGoroutines  prometheus.Gauge
	gcPauseMs         prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cheatsheet",
		subsystem:        "tiers",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.movesApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "moves_applied_total",
		Help:      "Total number of applied drag/reorder moves",
	})

	m.movesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "moves_duplicate_total",
		Help:      "Total number of replayed move events suppressed by dedupe",
	})

	m.manualRankEdits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "manual_rank_edits_total",
		Help:      "Total number of manual rank edits",
	})

	m.tiersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tiers_created_total",
		Help:      "Total number of tiers created",
	})

	m.tierCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tier_count",
		Help:      "Current number of tiers on the board, including unassigned",
	})

	m.playerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_count",
		Help:      "Current number of players tracked on the board",
	})

	m.saves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saves_total",
		Help:      "Total number of board snapshots written to storage",
	})

	m.saveFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_failures_total",
		Help:      "Total number of failed snapshot writes (non-fatal)",
	})

	m.loadCorruptions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_corruptions_total",
		Help:      "Total number of unparseable persisted snapshots treated as empty",
	})

	m.danglingDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dangling_dropped_total",
		Help:      "Total number of persisted player ids dropped during reconcile",
	})

	m.storageReadMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_read_milliseconds",
		Help:      "Histogram of storage read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storageWriteMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_write_milliseconds",
		Help:      "Histogram of storage write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.saveDebounceHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_debounce_hits_total",
		Help:      "Total number of save requests coalesced by the debouncer",
	})

	m.revealBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reveal_batches_total",
		Help:      "Total number of reveal chunks materialized",
	})

	m.revealedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "revealed_players",
		Help:      "Current count of players revealed from the unassigned pool",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total errors by component and kind",
	}, []string{"component", "kind"})

	m.systemMemoryBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})

	m.gcPauseMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the registry metrics are collected into; the health
// endpoint serves it.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordMoveApplied() {
	if globalManager.enabled {
		globalManager.movesApplied.Inc()
	}
}

func RecordMoveDuplicate() {
	if globalManager.enabled {
		globalManager.movesDuplicate.Inc()
	}
}

func RecordManualRankEdit() {
	if globalManager.enabled {
		globalManager.manualRankEdits.Inc()
	}
}

func RecordTierCreated() {
	if globalManager.enabled {
		globalManager.tiersCreated.Inc()
	}
}

func UpdateTierCount(n int) {
	if globalManager.enabled {
		globalManager.tierCount.Set(float64(n))
	}
}

func UpdatePlayerCount(n int) {
	if globalManager.enabled {
		globalManager.playerCount.Set(float64(n))
	}
}

func RecordSave() {
	if globalManager.enabled {
		globalManager.saves.Inc()
	}
}

func RecordSaveFailure() {
	if globalManager.enabled {
		globalManager.saveFailures.Inc()
	}
}

func RecordLoadCorruption() {
	if globalManager.enabled {
		globalManager.loadCorruptions.Inc()
	}
}

func RecordDanglingDropped(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.danglingDropped.Add(float64(n))
	}
}

func RecordStorageReadLatency(ms float64) {
	if globalManager.enabled {
		globalManager.storageReadMs.Observe(ms)
	}
}

func RecordStorageWriteLatency(ms float64) {
	if globalManager.enabled {
		globalManager.storageWriteMs.Observe(ms)
	}
}

func RecordSaveDebounceHit() {
	if globalManager.enabled {
		globalManager.saveDebounceHits.Inc()
	}
}

func RecordRevealBatch() {
	if globalManager.enabled {
		globalManager.revealBatches.Inc()
	}
}

func UpdateRevealedPlayers(n int) {
	if globalManager.enabled {
		globalManager.revealedPlayers.Set(float64(n))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

func RecordErrorByComponent(component, kind string) {
	if globalManager.enabled {
		globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
	}
}

func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryBytes.Set(float64(bytes))
	}
}

func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutines.Set(float64(n))
	}
}

func RecordSystemGCPauseTime(ms float64) {
	if globalManager.enabled {
		globalManager.gcPauseMs.Observe(ms)
	}
}
