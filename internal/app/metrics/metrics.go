package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "audio-minutes/internal/app/errors"
)

const namespace = "minutes"

// Pipeline stages
const (
	StageConvert   = "convert"
	StageUpload    = "upload"
	StageSummarize = "summarize"
)

// Outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeQuotaExceeded = "quota_exceeded"
	OutcomeConversion    = "conversion_error"
	OutcomeUpload        = "upload_error"
	OutcomeSummarization = "summarization_error"
	OutcomeOther         = "error"
)

// Metrics records pipeline activity on its own registry
type Metrics struct {
	registry        *prometheus.Registry
	stageDuration   *prometheus.HistogramVec
	runs            *prometheus.CounterVec
	cleanupFailures prometheus.Counter
}

// New creates and registers the pipeline collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"stage"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		cleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_failures_total",
			Help:      "Temporary files that could not be removed.",
		}),
	}

	m.registry.MustRegister(
		m.stageDuration,
		m.runs,
		m.cleanupFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveStage records how long stage took
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun counts a finished pipeline run under the outcome derived from err
func (m *Metrics) RecordRun(err error) {
	m.runs.WithLabelValues(Outcome(err)).Inc()
}

// RecordCleanupFailure counts a temporary file left behind
func (m *Metrics) RecordCleanupFailure() {
	m.cleanupFailures.Inc()
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome maps err to its outcome label
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch apperrors.Kind(err) {
	case apperrors.ErrQuotaExceeded:
		return OutcomeQuotaExceeded
	case apperrors.ErrConversion:
		return OutcomeConversion
	case apperrors.ErrUpload:
		return OutcomeUpload
	case apperrors.ErrSummarization:
		return OutcomeSummarization
	default:
		return OutcomeOther
	}
}
