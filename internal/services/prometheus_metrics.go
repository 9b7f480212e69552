package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics.
const (
	MetricReportGenerated      = "report.generated"
	MetricReportDuration       = "report.duration"
	MetricAuthenticationEvent  = "authentication_event"
	MetricEntryWritten         = "entry.written"
	MetricBlacklistedPurged    = "blacklisted_tokens.purged"
	MetricBlacklistedLastPurge = "blacklisted_tokens.last_purge"
)

type PrometheusMetrics struct {
	reportsGenerated          *prometheus.CounterVec
	reportDuration            prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
	entriesWrittenTotal       *prometheus.CounterVec
	blacklistedTokensPurged   prometheus.Counter
	blacklistedTokensLastRun  prometheus.Gauge
}

// NewPrometheusMetrics registers the service metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monthly_reports_generated_total",
				Help: "Total number of monthly reports computed",
			},
			[]string{"status"},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "monthly_report_duration_seconds",
				Help:    "Monthly report computation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		entriesWrittenTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entries_written_total",
				Help: "Total number of expense and income writes",
			},
			[]string{"kind", "operation"},
		),
		blacklistedTokensPurged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blacklisted_tokens_purged_total",
				Help: "Total number of expired revoked tokens removed",
			},
		),
		blacklistedTokensLastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blacklisted_tokens_last_purge_timestamp_seconds",
				Help: "Unix time of the last revoked token purge",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricReportGenerated:
		if status := tags["status"]; status != "" {
			m.reportsGenerated.WithLabelValues(status).Inc()
		}
	case MetricAuthenticationEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case MetricEntryWritten:
		kind, operation := tags["kind"], tags["operation"]
		if kind != "" && operation != "" {
			m.entriesWrittenTotal.WithLabelValues(kind, operation).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricReportDuration:
		m.reportDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricBlacklistedPurged:
		m.blacklistedTokensPurged.Add(value)
	case MetricBlacklistedLastPurge:
		m.blacklistedTokensLastRun.Set(value)
	}
}
