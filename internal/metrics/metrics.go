// Package metrics exposes Prometheus collectors for the reminder dispatcher.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
)

var (
	// RemindersDispatched counts dispatch decisions per outcome and source.
	RemindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hearth_reminders_dispatched_total",
			Help: "Reminders considered due, by outcome and source",
		},
		[]string{"outcome", "source"},
	)

	// DispatchRuns counts SendDue passes.
	DispatchRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hearth_dispatch_runs_total",
			Help: "Number of fire-once dispatch passes",
		},
	)

	// UpcomingReminders is the size of the last look-ahead feed.
	UpcomingReminders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hearth_upcoming_reminders",
			Help: "Reminders within the dispatcher look-ahead window at the last pass",
		},
	)

	// CustomRemindersCreated counts reminders written to the custom store.
	CustomRemindersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hearth_custom_reminders_created_total",
			Help: "Custom reminders created, by origin",
		},
		[]string{"origin"}, // origin: command, outlook
	)
)

// RecordDispatch increments the dispatch counter for one reminder.
func RecordDispatch(outcome, source string) {
	RemindersDispatched.WithLabelValues(outcome, source).Inc()
}

// RecordCustomCreated increments the custom reminder counter.
func RecordCustomCreated(origin string) {
	CustomRemindersCreated.WithLabelValues(origin).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
