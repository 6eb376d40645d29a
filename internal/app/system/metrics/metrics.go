// Package metrics exposes Prometheus counters for the portal's workflows.
// All methods are safe on a nil *Metrics, so tests and tools can skip them.
package metrics

import (
	"context"
	"net/http"
	"time"

	metricsstore "github.com/dalemusser/youthportal/internal/app/store/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "youthportal"

type Metrics struct {
	reg *prometheus.Registry

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	surveys       *prometheus.CounterVec
	deletes       *prometheus.CounterVec
}

// New builds a private registry holding the portal counters plus the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "registrations_total",
			Help: "Registration attempts by result.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "status_transitions_total",
			Help: "Admin status changes by target status.",
		}, []string{"status"}),
		surveys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "survey_saves_total",
			Help: "Survey saves by action (created, updated).",
		}, []string{"action"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "account_deletes_total",
			Help: "Account deletes by outcome (complete, partial).",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.registrations, m.logins, m.transitions, m.surveys, m.deletes,
	)
	return m
}

// WatchAccounts registers gauges that read account counts at scrape time.
func (m *Metrics) WatchAccounts(fetch func(ctx context.Context) metricsstore.Counts, timeout time.Duration) {
	if m == nil {
		return
	}
	read := func(pick func(metricsstore.Counts) int64) func() float64 {
		return func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return float64(pick(fetch(ctx)))
		}
	}
	gauge := func(status string, pick func(metricsstore.Counts) int64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "accounts",
			Help:        "Non-admin accounts by status.",
			ConstLabels: prometheus.Labels{"status": status},
		}, read(pick))
	}
	m.reg.MustRegister(
		gauge("pending", func(c metricsstore.Counts) int64 { return c.Pending }),
		gauge("approved", func(c metricsstore.Counts) int64 { return c.Approved }),
		gauge("rejected", func(c metricsstore.Counts) int64 { return c.Rejected }),
	)
}

func (m *Metrics) Registration(result string) {
	if m != nil {
		m.registrations.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Login(result string) {
	if m != nil {
		m.logins.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Transition(status string) {
	if m != nil {
		m.transitions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) SurveySaved(action string) {
	if m != nil {
		m.surveys.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) AccountDeleted(partial bool) {
	if m == nil {
		return
	}
	outcome := "complete"
	if partial {
		outcome = "partial"
	}
	m.deletes.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
