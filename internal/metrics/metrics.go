package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trade_overlay"

// Removal reasons for offers.
const (
	ReasonIgnored  = "ignored"
	ReasonAccepted = "accepted"
	ReasonSold     = "sold"
	ReasonRemoved  = "removed"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Game tracking metrics
	PollTicks    prometheus.Counter
	PollErrors   prometheus.Counter
	StateChanges *prometheus.CounterVec
	GameActive   prometheus.Gauge
	LogFiles     prometheus.Counter

	// Offer metrics
	OffersPending prometheus.Gauge
	OffersAdded   prometheus.Counter
	OffersRemoved *prometheus.CounterVec

	// Command metrics
	CommandsSent   *prometheus.CounterVec
	CommandsFailed *prometheus.CounterVec

	// Chat metrics
	ChatLines  prometheus.Counter
	ChatEvents *prometheus.CounterVec
}

// New creates a metrics collector backed by a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PollTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_ticks_total",
			Help:      "Total number of foreground window polls",
		}),
		PollErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Polls whose window query failed and counted as inactive",
		}),
		StateChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_state_changes_total",
			Help:      "Observable game state changes by resulting activity",
		}, []string{"active"}),
		GameActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "game_active",
			Help:      "1 when the game is the foreground window",
		}),
		LogFiles: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_files_located_total",
			Help:      "Number of times the chat log file was located",
		}),

		OffersPending: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "offers_pending",
			Help:      "Offers currently in the store",
		}),
		OffersAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_added_total",
			Help:      "Total number of offers added",
		}),
		OffersRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_removed_total",
			Help:      "Offers removed from the store by reason",
		}, []string{"reason"}),

		CommandsSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_sent_total",
			Help:      "Game commands dispatched by kind",
		}, []string{"kind"}),
		CommandsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_failed_total",
			Help:      "Game commands that failed by kind",
		}, []string{"kind"}),

		ChatLines: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_lines_total",
			Help:      "Chat log lines read",
		}),
		ChatEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_events_total",
			Help:      "Chat lines recognized as trade events by kind",
		}, []string{"kind"}),
	}
}

// Registry returns the registry holding all overlay metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
