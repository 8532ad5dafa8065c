package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the collectors of the service.
type Prometheus struct {
	Fits        *prometheus.CounterVec
	Cases       *prometheus.CounterVec
	FitDuration *prometheus.HistogramVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pump",
				Name:      "fits_total",
				Help:      "number of polynomial fits by curve and outcome",
			}, []string{"curve", "status"}),
		Cases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pump",
				Name:      "cases_total",
				Help:      "number of case operations by outcome",
			}, []string{"op", "status"}),
		FitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pump",
				Name:      "fit_duration_seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
			}, []string{"curve"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Fits, p.Cases, p.FitDuration}
}
