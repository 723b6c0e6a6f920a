package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

// Recorder exports resolution outcomes as Prometheus metrics.
type Recorder struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ ports.Recorder = (*Recorder)(nil)

// NewRecorder registers the attachment metrics on a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "push_attach",
		Name:      "resolutions_total",
		Help:      "Notification resolutions by outcome.",
	}, []string{"reason"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "push_attach",
		Name:      "resolution_duration_seconds",
		Help:      "Time from resolve call to completion.",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"reason"})

	registry.MustRegister(resolutions, duration)

	return &Recorder{
		registry:    registry,
		resolutions: resolutions,
		duration:    duration,
	}
}

// ObserveResolution records one completed resolution.
func (r *Recorder) ObserveResolution(reason model.Reason, elapsed time.Duration) {
	r.resolutions.WithLabelValues(string(reason)).Inc()
	r.duration.WithLabelValues(string(reason)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
