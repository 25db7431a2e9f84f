package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	notificationsIngested *prometheus.CounterVec
	parseFailures         *prometheus.CounterVec
	ledgerMutations       *prometheus.CounterVec
	ledgerLoadDuration    prometheus.Histogram
	allowanceLevel        prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		notificationsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_ingested_total",
				Help: "Total number of notifications processed by channel and status",
			},
			[]string{"channel", "status"},
		),
		parseFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notification_parse_failures_total",
				Help: "Total number of notification parse failures by missing field",
			},
			[]string{"field"},
		),
		ledgerMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutations_total",
				Help: "Total number of transaction mutations by kind",
			},
			[]string{"kind"},
		),
		ledgerLoadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_load_duration_milliseconds",
				Help:    "Dashboard load duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		allowanceLevel: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "allowance_current",
				Help: "Current allowance aggregate total",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	channel := tags["channel"]

	switch name {
	case "ingestion.notification.accepted":
		m.notificationsIngested.WithLabelValues(channel, "accepted").Inc()
	case "ingestion.notification.rejected":
		m.notificationsIngested.WithLabelValues(channel, "rejected").Inc()
		if field := tags["field"]; field != "" {
			m.parseFailures.WithLabelValues(field).Inc()
		}
	case "ledger.mutation":
		if kind := tags["kind"]; kind != "" {
			m.ledgerMutations.WithLabelValues(kind).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "ledger.load":
		m.ledgerLoadDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "allowance.current":
		m.allowanceLevel.Set(value)
	}
}
