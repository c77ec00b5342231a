package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Assignment outcomes
const (
	AssignmentCreated           = "created"
	AssignmentRejectedCapacity  = "rejected_capacity"
	AssignmentRejectedDuplicate = "rejected_duplicate"
)

// Lookup outcomes
const (
	LookupFound     = "found"
	LookupNotFound  = "not_found"
	LookupAmbiguous = "ambiguous"
)

// Recorder is what the services report domain events to.
type Recorder interface {
	Assignment(result string)
	Lookup(result string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Assignment(string) {}
func (Nop) Lookup(string)     {}

// Collector implements Recorder on top of Prometheus and also carries the
// HTTP request metrics.
type Collector struct {
	reg prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	assignments  *prometheus.CounterVec
	lookups      *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewPrometheus registers the collectors on reg under namespace.
// A nil reg gets a fresh registry so repeated construction in tests does not
// collide on the global default registerer.
func NewPrometheus(reg *prometheus.Registry, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "choix"
	}

	c := &Collector{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Assignment attempts by outcome.",
		}, []string{"result"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Intern lookups by lookup token, by outcome.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.assignments,
		c.lookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Assignment counts an assignment outcome
func (c *Collector) Assignment(result string) {
	c.assignments.WithLabelValues(result).Inc()
}

// Lookup counts a lookup outcome
func (c *Collector) Lookup(result string) {
	c.lookups.WithLabelValues(result).Inc()
}

// ObserveRequest records one finished HTTP request
func (c *Collector) ObserveRequest(method, route, status string, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
