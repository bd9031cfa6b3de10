package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls and renewals
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Registry holds the service collectors on a private prometheus registry
type Registry struct {
	reg              *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	EnrichmentMisses *prometheus.CounterVec
	SessionRenewals  *prometheus.CounterVec
}

// NewRegistry creates and registers all collectors
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	upstream := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "myorders_upstream_requests_total",
		Help: "Calls to external services by service, method and outcome.",
	}, []string{"service", "method", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "myorders_upstream_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "method"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "myorders_enrichment_misses_total",
		Help: "Records rendered with fallback data, by kind.",
	}, []string{"kind"})
	renewals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "myorders_session_renewals_total",
	}, []string{"outcome"})

	r.MustRegister(upstream, latency, misses, renewals)
	return &Registry{
		reg:              r,
		UpstreamRequests: upstream,
		UpstreamLatency:  latency,
		EnrichmentMisses: misses,
		SessionRenewals:  renewals,
	}
}

// ObserveUpstream records one external call
func (r *Registry) ObserveUpstream(service, method string, seconds float64, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.UpstreamRequests.WithLabelValues(service, method, outcome).Inc()
	r.UpstreamLatency.WithLabelValues(service, method).Observe(seconds)
}

// Miss records a fallback of the given kind (catalog, comment, status)
func (r *Registry) Miss(kind string) {
	if r == nil {
		return
	}
	r.EnrichmentMisses.WithLabelValues(kind).Inc()
}

// Renewal records a session renewal attempt
func (r *Registry) Renewal(ok bool) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	r.SessionRenewals.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
