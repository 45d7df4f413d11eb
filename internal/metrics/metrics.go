// Package metrics exposes killbot's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters incremented by the pipeline.
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched       prometheus.Counter
	FetchRetries       prometheus.Counter
	BattlesIngested    prometheus.Counter
	BattlesPruned      prometheus.Counter
	NotificationsSent  prometheus.Counter
	DeliveryFailures   prometheus.Counter
	NotificationCycles prometheus.Counter
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "feed_pages_fetched_total",
			Help: "Feed pages fetched during catch-up.",
		}),
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "feed_fetch_retries_total",
			Help: "Page fetches retried after a transport failure.",
		}),
		BattlesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "battles_ingested_total",
			Help: "New battles inserted into the store.",
		}),
		BattlesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "battles_pruned_total",
			Help: "Battles deleted by retention pruning.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "notifications_sent_total",
			Help: "Battle notifications delivered.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "delivery_failures_total",
			Help: "Battle notifications that failed or timed out.",
		}),
		NotificationCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "killbot", Name: "notification_cycles_total",
			Help: "Completed notification cycles.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.PagesFetched,
		m.FetchRetries,
		m.BattlesIngested,
		m.BattlesPruned,
		m.NotificationsSent,
		m.DeliveryFailures,
		m.NotificationCycles,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
