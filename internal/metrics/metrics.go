package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RouteRequests   *prometheus.CounterVec
	StaleDiscarded  *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	PositionUpdates prometheus.Counter
	CurrentStep     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RouteRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_route_requests_total",
			Help: "Total number of route requests issued, by outcome.",
		}, []string{"status"}),
		StaleDiscarded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_stale_responses_discarded_total",
			Help: "Total number of superseded provider responses discarded.",
		}, []string{"kind"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wayfinder_provider_request_duration_seconds",
			Help:    "Duration of requests to external providers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		PositionUpdates: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "wayfinder_position_updates_total",
			Help: "Total number of position updates consumed.",
		}),
		CurrentStep: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "wayfinder_current_step_index",
			Help: "Index of the route step the traveler currently occupies.",
		}),
	}
}
