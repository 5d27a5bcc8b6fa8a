// Package metrics holds the prometheus instruments updated while reading
// statements.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quadline"

// Ingest counts lines, statements and parse failures. A nil *Ingest is
// valid and records nothing.
type Ingest struct {
	lines        prometheus.Counter
	statements   *prometheus.CounterVec // by graph: default or named
	duplicates   prometheus.Counter
	parseErrors  *prometheus.CounterVec // by reason
	readDuration prometheus.Histogram
}

// NewIngest creates the ingestion metrics and registers them with reg.
// A nil registerer disables metrics and returns nil.
func NewIngest(reg prometheus.Registerer) (*Ingest, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Ingest{
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Total number of input lines read",
		}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Total number of statements added to a graph",
		}, []string{"graph"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Total number of parsed statements already present in their graph",
		}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total number of rejected lines",
		}, []string{"reason"}),
		readDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "read_duration_seconds",
			Help:      "Duration of a complete read of one input source",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.lines, m.statements, m.duplicates, m.parseErrors, m.readDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Line records one input line.
func (m *Ingest) Line() {
	if m == nil {
		return
	}
	m.lines.Inc()
}

// Statement records a committed statement. Statements that were already
// present count as duplicates.
func (m *Ingest) Statement(named, added bool) {
	if m == nil {
		return
	}
	if !added {
		m.duplicates.Inc()
		return
	}
	graph := "default"
	if named {
		graph = "named"
	}
	m.statements.WithLabelValues(graph).Inc()
}

// ParseError records a rejected line.
func (m *Ingest) ParseError(reason string) {
	if m == nil {
		return
	}
	m.parseErrors.WithLabelValues(reason).Inc()
}

// ReadDone records how long a full read took.
func (m *Ingest) ReadDone(d time.Duration) {
	if m == nil {
		return
	}
	m.readDuration.Observe(d.Seconds())
}
