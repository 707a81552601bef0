package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetdesk_client_requests_total",
			Help: "API requests sent by the console, by method and response status.",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetdesk_client_request_duration_seconds",
			Help:    "Round-trip time of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}
