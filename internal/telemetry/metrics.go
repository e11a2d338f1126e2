package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Counters
	eventsIngested   *prometheus.CounterVec
	eventsMalformed  *prometheus.CounterVec
	archiveFailures  prometheus.Counter
	reconnects       prometheus.Counter
	syncOutcomes     *prometheus.CounterVec
	liveBroadcasts   prometheus.Counter
	liveDropped      prometheus.Counter
	taskTransitions  *prometheus.CounterVec
	transitionDenied *prometheus.CounterVec

	// Gauges
	queueDepth  prometheus.Gauge
	listening   prometheus.Gauge
	liveViewers prometheus.Gauge
	projections prometheus.Gauge
}

// NewMetrics creates all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskchain_events_ingested_total",
				Help: "Total number of ledger events appended to the activity log",
			},
			[]string{"kind"},
		),
		eventsMalformed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskchain_events_malformed_total",
				Help: "Total number of ledger logs dropped as malformed",
			},
			[]string{"reason"},
		),
		archiveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskchain_archive_failures_total",
			Help: "Total number of events that could not be archived",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskchain_listener_reconnects_total",
			Help: "Total number of ledger resubscriptions",
		}),
		syncOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskchain_shadow_sync_total",
				Help: "Shadow synchronizations by operation and result",
			},
			[]string{"op", "result"},
		),
		liveBroadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskchain_live_broadcasts_total",
			Help: "Total number of live board updates broadcast",
		}),
		liveDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskchain_live_dropped_total",
			Help: "Total number of live updates dropped for slow viewers",
		}),
		taskTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskchain_shadow_transitions_total",
				Help: "Accepted shadow task updates by resulting status",
			},
			[]string{"status"},
		),
		transitionDenied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskchain_shadow_transitions_denied_total",
				Help: "Rejected shadow task updates by reason",
			},
			[]string{"reason"},
		),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "taskchain_indexer_queue_depth",
			Help: "Ledger events waiting for the indexer",
		}),
		listening: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "taskchain_listener_up",
			Help: "1 while the ledger subscription is live",
		}),
		liveViewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "taskchain_live_viewers",
			Help: "Connected board viewers",
		}),
		projections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "taskchain_projections",
			Help: "Number of tasks known to the indexer",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.eventsIngested,
		m.eventsMalformed,
		m.archiveFailures,
		m.reconnects,
		m.syncOutcomes,
		m.liveBroadcasts,
		m.liveDropped,
		m.taskTransitions,
		m.transitionDenied,
		m.queueDepth,
		m.listening,
		m.liveViewers,
		m.projections,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EventIngested records an appended event.
func (m *Metrics) EventIngested(kind string) {
	if m == nil {
		return
	}
	m.eventsIngested.WithLabelValues(kind).Inc()
}

// EventMalformed records a dropped ledger log.
func (m *Metrics) EventMalformed(reason string) {
	if m == nil {
		return
	}
	m.eventsMalformed.WithLabelValues(reason).Inc()
}

// ArchiveFailed records an event that was not archived.
func (m *Metrics) ArchiveFailed() {
	if m == nil {
		return
	}
	m.archiveFailures.Inc()
}

// Reconnected records a resubscription.
func (m *Metrics) Reconnected() {
	if m == nil {
		return
	}
	m.reconnects.Inc()
}

// SetListening flips the listener gauge.
func (m *Metrics) SetListening(up bool) {
	if m == nil {
		return
	}
	if up {
		m.listening.Set(1)
		return
	}
	m.listening.Set(0)
}

// SetQueueDepth records the indexer backlog.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// SetProjections records the number of known tasks.
func (m *Metrics) SetProjections(n int) {
	if m == nil {
		return
	}
	m.projections.Set(float64(n))
}

// SyncOutcome records a shadow synchronization result.
func (m *Metrics) SyncOutcome(op string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.syncOutcomes.WithLabelValues(op, result).Inc()
}

// Transition records an accepted shadow task update.
func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.taskTransitions.WithLabelValues(status).Inc()
}

// TransitionDenied records a rejected shadow task update.
func (m *Metrics) TransitionDenied(reason string) {
	if m == nil {
		return
	}
	m.transitionDenied.WithLabelValues(reason).Inc()
}

// Broadcast records a live update and how many viewers missed it.
func (m *Metrics) Broadcast(dropped int) {
	if m == nil {
		return
	}
	m.liveBroadcasts.Inc()
	m.liveDropped.Add(float64(dropped))
}

// ViewerConnected adjusts the live viewer gauge.
func (m *Metrics) ViewerConnected(delta int) {
	if m == nil {
		return
	}
	m.liveViewers.Add(float64(delta))
}
