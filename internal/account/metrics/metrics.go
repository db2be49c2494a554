// Package metrics holds the Prometheus collectors for the account service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "heymumma"

type Metrics struct {
	Accounts         prometheus.Gauge
	AccountsComplete prometheus.Gauge
	Signups          *prometheus.CounterVec
	Logins           *prometheus.CounterVec
	ProfileUpdates   prometheus.Counter
	Predictions      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SchemaMode       *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg. Pass a fresh
// registry in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Accounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts",
			Help:      "Number of accounts in the store.",
		}),
		AccountsComplete: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts_profile_complete",
			Help:      "Number of accounts with all five profile fields filled in.",
		}),
		Signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signup attempts by result.",
		}, []string{"result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		ProfileUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_updates_total",
			Help:      "Successful profile updates.",
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Classifier predictions by model and level.",
		}, []string{"model", "level"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
		SchemaMode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_schema_mode",
			Help:      "1 for the active profile_completed source (flag or derived).",
		}, []string{"mode"}),
	}

	reg.MustRegister(
		m.Accounts,
		m.AccountsComplete,
		m.Signups,
		m.Logins,
		m.ProfileUpdates,
		m.Predictions,
		m.RequestDuration,
		m.SchemaMode,
	)
	return m
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// SetSchemaMode marks mode as the only active one.
func (m *Metrics) SetSchemaMode(mode string) {
	m.SchemaMode.Reset()
	m.SchemaMode.WithLabelValues(mode).Set(1)
}
