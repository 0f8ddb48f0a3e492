package argbind

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "argbind"
	subsystem = "parser"
)

// resultLabels names the result of a Parse call by error kind.
var resultLabels = []struct {
	err   error
	label string
}{
	{ErrInvalidGrammar, "invalid_grammar"},
	{ErrEmptyOrUnresolvableUsage, "unresolvable_usage"},
	{ErrUnsupportedFieldType, "unsupported_field_type"},
	{ErrUnknownOption, "unknown_option"},
	{ErrMissingValue, "missing_value"},
	{ErrMissingMandatoryOption, "missing_mandatory_option"},
	{ErrDataFormat, "data_format"},
	{ErrTargetConstruction, "target_construction"},
}

// Metrics represents parser metrics.
type Metrics struct {
	Parses   *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics creates parser metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parses_total",
				Help:      "Total number of Parse calls by result.",
			},
			[]string{"result"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Parse call durations.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Parses.Describe(ch)
	m.Duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Parses.Collect(ch)
	m.Duration.Collect(ch)
}

// observe records the result of a Parse call. It does nothing on nil metrics.
func (m *Metrics) observe(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Parses.WithLabelValues(resultLabel(err)).Inc()
	m.Duration.Observe(d.Seconds())
}

// resultLabel returns "ok" or the label of the error kind.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range resultLabels {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "unknown"
}

// check interfaces
var (
	_ prometheus.Collector = (*Metrics)(nil)
)
