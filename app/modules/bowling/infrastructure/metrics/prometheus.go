package bowlingmetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tenpin"

// PrometheusMetrics implements BowlingMetrics on a prometheus registry.
type PrometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	rolls         *prometheus.CounterVec
	strikes       prometheus.Counter
	spares        prometheus.Counter
	rejectedRolls *prometheus.CounterVec
	finalScores   prometheus.Histogram
	activeGames   prometheus.Gauge
}

// NewPrometheusMetrics creates the bowling collectors and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Number of bowling service operations started.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_successes_total",
			Help:      "Number of bowling service operations that succeeded.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Number of bowling service operations that failed.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of bowling service operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"operation"}),
		rolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Accepted rolls by pins knocked down.",
		}, []string{"pins"}),
		strikes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strikes_total",
			Help:      "Frames opened with a strike.",
		}),
		spares: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spares_total",
			Help:      "Frames closed with a spare.",
		}),
		rejectedRolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_rolls_total",
			Help:      "Rolls refused by the scoring engine, by reason.",
		}, []string{"reason"}),
		finalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Final score of completed games.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
		activeGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Games currently held in memory.",
		}),
	}

	collectors := []prometheus.Collector{
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.rolls,
		m.strikes,
		m.spares,
		m.rejectedRolls,
		m.finalScores,
		m.activeGames,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRoll(_ context.Context, pins int) {
	m.rolls.WithLabelValues(strconv.Itoa(pins)).Inc()
}

func (m *PrometheusMetrics) RecordStrike(_ context.Context) {
	m.strikes.Inc()
}

func (m *PrometheusMetrics) RecordSpare(_ context.Context) {
	m.spares.Inc()
}

func (m *PrometheusMetrics) RecordRejectedRoll(_ context.Context, reason string) {
	m.rejectedRolls.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) RecordGameCompleted(_ context.Context, finalScore int) {
	m.finalScores.Observe(float64(finalScore))
}

func (m *PrometheusMetrics) SetActiveGames(_ context.Context, count int) {
	m.activeGames.Set(float64(count))
}

var _ BowlingMetrics = (*PrometheusMetrics)(nil)
