package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	cacheOps      *prometheus.CounterVec
	riskScore     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_fetches_total",
				Help: "Series fetches by outcome (hit, miss, error)",
			},
			[]string{"series", "outcome"},
		),
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_fetch_duration_seconds",
				Help:    "Upstream observation fetch duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"series"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_cache_ops_total",
				Help: "Observation cache operations",
			},
			[]string{"op"},
		),
		riskScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "macropulse_recession_risk_score",
				Help: "Last computed composite recession risk score (0-100)",
			},
		),
	}
}

// RecordFetch counts a fetch outcome for a series.
func (r *Recorder) RecordFetch(series, outcome string) {
	r.fetchesTotal.WithLabelValues(series, outcome).Inc()
}

// RecordFetchDuration records upstream latency for a series.
func (r *Recorder) RecordFetchDuration(series string, d time.Duration) {
	r.fetchDuration.WithLabelValues(series).Observe(d.Seconds())
}

// RecordCacheOp counts a cache operation (get_hit, get_miss, set).
func (r *Recorder) RecordCacheOp(op string) {
	r.cacheOps.WithLabelValues(op).Inc()
}

// RecordRiskScore publishes the latest composite score.
func (r *Recorder) RecordRiskScore(score float64) {
	r.riskScore.Set(score)
}
