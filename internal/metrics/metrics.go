package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "marineiq"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, partitioned by route pattern and status code.",
		},
		[]string{"route", "status"},
	)

	httpRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Correlation submissions, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_seconds",
			Help:      "Time from submission to completion of correlation analyses.",
			Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 2.5, 3, 5, 10},
		},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live dashboard sessions.",
		},
	)

	assistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_requests_total",
			Help:      "Ocean assistant questions, partitioned by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register attaches the collectors to reg. Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		httpRequestsTotal,
		httpRequestSeconds,
		analysesTotal,
		analysisSeconds,
		sessionsActive,
		assistantRequestsTotal,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records one HTTP request.
func ObserveRequest(route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpRequestSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

// Recorder adapts the collectors to the application observer interfaces.
type Recorder struct{}

func (Recorder) ObserveAnalysis(outcome string, d time.Duration) {
	analysesTotal.WithLabelValues(outcome).Inc()
	if d > 0 {
		analysisSeconds.Observe(d.Seconds())
	}
}

func (Recorder) SetActiveSessions(n int) {
	sessionsActive.Set(float64(n))
}

func (Recorder) ObserveAssistant(outcome string) {
	assistantRequestsTotal.WithLabelValues(outcome).Inc()
}
