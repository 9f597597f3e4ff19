package unify

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/pkg/core"
)

// Outcomes recorded for every document a source offers.
const (
	OutcomeAccepted          = "accepted"
	OutcomeDuplicateSlug     = "duplicate_slug"
	OutcomeDuplicateExternal = "duplicate_external_id"
)

// Metrics counts what the unifier keeps and drops.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Documents *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	Unified   *prometheus.GaugeVec
}

// NewMetrics builds the unifier collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "unify",
			Name:      "documents_total",
			Help:      "Documents offered by each source, by outcome.",
		}, []string{"collection", "source", "outcome"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "unify",
			Name:      "source_failures_total",
			Help:      "Source reads that failed and were treated as empty.",
		}, []string{"source", "op"}),
		Unified: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "folio",
			Subsystem: "unify",
			Name:      "unified_documents",
			Help:      "Size of the last unified view per collection.",
		}, []string{"collection"}),
	}
	if reg != nil {
		reg.MustRegister(m.Documents, m.Failures, m.Unified)
	}
	return m
}

func (m *Metrics) document(c core.Collection, src core.SourceKind, outcome string) {
	if m == nil {
		return
	}
	m.Documents.WithLabelValues(string(c), string(src), outcome).Inc()
}

func (m *Metrics) failure(src core.SourceKind, op string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(string(src), op).Inc()
}

func (m *Metrics) unified(c core.Collection, n int) {
	if m == nil {
		return
	}
	m.Unified.WithLabelValues(string(c)).Set(float64(n))
}
