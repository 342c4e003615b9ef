// Package metrics contadores Prometheus del motor de documentos.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
)

var _ documents.Metrics = (*Collector)(nil)

// Collector implementa documents.Metrics sobre un registro propio.
type Collector struct {
	registry    *prometheus.Registry
	created     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	retries     *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// NewCollector registra los contadores junto con los de proceso y runtime de Go.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_created_total",
			Help:      "Documentos creados por tipo.",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_transitions_total",
			Help:      "Transiciones de estado solicitadas por tipo, destino y resultado.",
		}, []string{"kind", "target", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflict_retries_total",
			Help:      "Reintentos por modificaciones concurrentes.",
		}, []string{"operation"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP por ruta y código.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.created, c.transitions, c.retries, c.requests,
	)
	return c
}

func (c *Collector) DocumentCreated(kind string) {
	c.created.WithLabelValues(kind).Inc()
}

func (c *Collector) TransitionApplied(kind, target, outcome string) {
	c.transitions.WithLabelValues(kind, target, outcome).Inc()
}

func (c *Collector) ConflictRetried(operation string) {
	c.retries.WithLabelValues(operation).Inc()
}

// ObserveRequest registra la duración de una petición HTTP.
func (c *Collector) ObserveRequest(method, route, status string, seconds float64) {
	c.requests.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler expone el registro en formato Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry para pruebas y exportadores adicionales.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
