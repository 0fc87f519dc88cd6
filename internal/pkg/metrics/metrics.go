/*
Package metrics defines the Prometheus collectors of the client core.

A nil *Metrics is valid and records nothing, so components can be built without a registry.
*/
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors recorded by the transport and the event cards.
type Metrics struct {
	// RequestDuration observes API round trips by method, route and status.
	RequestDuration *prometheus.HistogramVec

	// SessionInvalidations counts sessions cleared because the server answered 401.
	SessionInvalidations prometheus.Counter

	// CardActions counts card actions by action name and result.
	CardActions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eventify_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
			[]string{"method", "route", "status"},
		),
		SessionInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventify_session_invalidations_total",
			Help: "Number of sessions cleared after an unauthorized response.",
		}),
		CardActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventify_card_actions_total",
			Help: "Number of event card actions by result.",
		},
			[]string{"action", "result"},
		),
	}

	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.SessionInvalidations)
	reg.MustRegister(m.CardActions)
	return m
}

// ObserveRequest records one round trip. status is 0 when no response was received.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}

	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}

	m.RequestDuration.WithLabelValues(method, route, label).Observe(time.Since(start).Seconds())
}

// SessionInvalidated increments the invalidation counter.
func (m *Metrics) SessionInvalidated() {
	if m == nil {
		return
	}
	m.SessionInvalidations.Inc()
}

// CardAction records the outcome of a card action.
func (m *Metrics) CardAction(action string, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CardActions.WithLabelValues(action, result).Inc()
}
