// Package metrics records mapper compile and execute events as Prometheus
// metrics. A Collector satisfies mapper.Observer:
//
//	col := metrics.NewCollector()
//	registry, err := metrics.NewRegistry(col)
//	if err != nil {
//		return err
//	}
//	m := mapper.Create(spec, nil, mapper.WithName("user"), mapper.WithObserver(col))
//	http.Handle("/metrics", metrics.Handler(registry))
//
// A Collector can also be registered with any other prometheus.Registerer.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fieldmap"

const labelMapper = "mapper"

// Collector holds the mapper metrics. It is safe for concurrent use.
type Collector struct {
	compiles       *prometheus.CounterVec
	compiledFields *prometheus.GaugeVec
	compileSeconds *prometheus.HistogramVec
	executions     *prometheus.CounterVec
	executeSeconds *prometheus.HistogramVec
	fieldErrors    *prometheus.CounterVec
}

// NewCollector creates an unregistered collector.
func NewCollector() *Collector {
	return &Collector{
		compiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiles_total",
			Help:      "Number of mapper compilations.",
		}, []string{labelMapper}),
		compiledFields: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compiled_fields",
			Help:      "Number of leaf fields in the last compiled routine.",
		}, []string{labelMapper}),
		compileSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time spent compiling mappers.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 8),
		}, []string{labelMapper}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Number of completed Execute calls.",
		}, []string{labelMapper}),
		executeSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execute_duration_seconds",
			Help:      "Time spent running compiled routines.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{labelMapper}),
		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_errors_total",
			Help:      "Number of field errors collected in safe mode.",
		}, []string{labelMapper}),
	}
}

// Compiled records a compilation.
func (c *Collector) Compiled(mapper string, fields int, d time.Duration) {
	c.compiles.WithLabelValues(mapper).Inc()
	c.compiledFields.WithLabelValues(mapper).Set(float64(fields))
	c.compileSeconds.WithLabelValues(mapper).Observe(d.Seconds())
}

// Executed records a completed Execute call.
func (c *Collector) Executed(mapper string, d time.Duration, fieldErrors int) {
	c.executions.WithLabelValues(mapper).Inc()
	c.executeSeconds.WithLabelValues(mapper).Observe(d.Seconds())

	if fieldErrors > 0 {
		c.fieldErrors.WithLabelValues(mapper).Add(float64(fieldErrors))
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.compiles, c.compiledFields, c.compileSeconds,
		c.executions, c.executeSeconds, c.fieldErrors,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, col := range c.collectors() {
		col.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, col := range c.collectors() {
		col.Collect(ch)
	}
}

// NewRegistry creates a registry holding only the collector.
func NewRegistry(c *Collector) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	if err := registry.Register(c); err != nil {
		return nil, fmt.Errorf("register mapper metrics: %w", err)
	}

	return registry, nil
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
