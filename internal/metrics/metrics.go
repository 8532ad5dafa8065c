package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OK    = "ok"
	Error = "error"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.collectors()...)
}

type Metrics struct {
	prometheus Prometheus
}

// Fit records the outcome of a fit for the given curve.
func (m *Metrics) Fit(curve string, err error, duration time.Duration) {
	m.prometheus.Fits.WithLabelValues(curve, status(err)).Inc()
	m.prometheus.FitDuration.WithLabelValues(curve).Observe(duration.Seconds())
}

// Case records the outcome of a case operation e.g. store or load.
func (m *Metrics) Case(op string, err error) {
	m.prometheus.Cases.WithLabelValues(op, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return Error
	}
	return OK
}
