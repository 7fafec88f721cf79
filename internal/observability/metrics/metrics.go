package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "theatre_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	statementGenerateTotal   *prometheus.CounterVec
	statementGenerateLatency *prometheus.HistogramVec
	pricingErrorsTotal       *prometheus.CounterVec
	statementExportTotal     *prometheus.CounterVec
	statementExportLatency   *prometheus.HistogramVec
	statementAmountTotal     prometheus.Counter
	volumeCreditsTotal       prometheus.Counter
)

// Init registers statement metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		statementGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_generate_total",
				Help: "Total statement generate operations by result",
			},
			[]string{"result"},
		)
		statementGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_generate_latency_seconds",
				Help:    "Statement generate latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		pricingErrorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_pricing_errors_total",
				Help: "Total statement pricing failures by reason",
			},
			[]string{"reason"},
		)
		statementExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement export operations by format and result",
			},
			[]string{"format", "result"},
		)
		statementExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_export_latency_seconds",
				Help:    "Statement export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		statementAmountTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_amount_minor_units_total",
				Help: "Total billed amount across generated statements in minor currency units",
			},
		)
		volumeCreditsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_volume_credits_total",
				Help: "Total volume credits awarded across generated statements",
			},
		)

		prometheus.MustRegister(
			statementGenerateTotal,
			statementGenerateLatency,
			pricingErrorsTotal,
			statementExportTotal,
			statementExportLatency,
			statementAmountTotal,
			volumeCreditsTotal,
		)
	})
}

// ObserveStatementGenerate records generate latency and result.
func ObserveStatementGenerate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if statementGenerateTotal != nil {
		statementGenerateTotal.WithLabelValues(result).Inc()
	}
	if statementGenerateLatency != nil {
		statementGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncPricingError increments the pricing failure counter.
func IncPricingError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if pricingErrorsTotal != nil {
		pricingErrorsTotal.WithLabelValues(reason).Inc()
	}
}

// AddStatementTotals accumulates billed amount and credits.
func AddStatementTotals(amount int64, credits int) {
	if amount > 0 && statementAmountTotal != nil {
		statementAmountTotal.Add(float64(amount))
	}
	if credits > 0 && volumeCreditsTotal != nil {
		volumeCreditsTotal.Add(float64(credits))
	}
}

// ObserveStatementExport records export latency and result.
func ObserveStatementExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if statementExportTotal != nil {
		statementExportTotal.WithLabelValues(format, result).Inc()
	}
	if statementExportLatency != nil {
		statementExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// WriteTextfile dumps all registered metrics in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	ReasonUnknownPlayType  = "unknown_play_type"
	ReasonUnresolvedPlayID = "unresolved_play_id"
	ReasonNegativeAudience = "negative_audience"
)
