// Package metrics exposes resolver and HTTP instrumentation through Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is what the resolver, converter and HTTP middleware report to.
type Recorder interface {
	ObserveProvider(provider, outcome string, d time.Duration)
	CacheLookup(kind, result string)
	Fallback(kind, tier string)
	SetBreakerState(provider string, state int)
	ObserveHTTP(route, method string, status int, d time.Duration)
}

// Prometheus implements Recorder.
type Prometheus struct {
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		providerRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zakat_provider_requests_total",
				Help: "Upstream price and rate requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zakat_provider_request_duration_seconds",
				Help:    "Duration of upstream provider requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zakat_cache_lookups_total",
				Help: "Cache lookups by kind and result (fresh, stale, miss)",
			},
			[]string{"kind", "result"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zakat_fallbacks_total",
				Help: "Resolutions served from a fallback tier",
			},
			[]string{"kind", "tier"},
		),
		breakerState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zakat_provider_breaker_state",
				Help: "Circuit breaker state per provider (0 closed, 1 open, 2 half-open)",
			},
			[]string{"provider"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zakat_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zakat_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
	}
}

func (p *Prometheus) ObserveProvider(provider, outcome string, d time.Duration) {
	p.providerRequests.WithLabelValues(provider, outcome).Inc()
	p.providerLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func (p *Prometheus) CacheLookup(kind, result string) {
	p.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (p *Prometheus) Fallback(kind, tier string) {
	p.fallbacks.WithLabelValues(kind, tier).Inc()
}

func (p *Prometheus) SetBreakerState(provider string, state int) {
	p.breakerState.WithLabelValues(provider).Set(float64(state))
}

func (p *Prometheus) ObserveHTTP(route, method string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveProvider(string, string, time.Duration)  {}
func (Nop) CacheLookup(string, string)                     {}
func (Nop) Fallback(string, string)                        {}
func (Nop) SetBreakerState(string, int)                    {}
func (Nop) ObserveHTTP(string, string, int, time.Duration) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}
