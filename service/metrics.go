package service

import (
	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "invoice_audit"

// Metrics counts what the pipeline did. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	documents   prometheus.Counter
	fallbacks   *prometheus.CounterVec
	ledgerRows  *prometheus.CounterVec
	ocrFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		documents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "documents_extracted_total",
			Help:      "Invoice documents turned into records.",
		}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "extraction_source_total",
			Help:      "Which rule produced each extracted field.",
		}, []string{"field", "source"}),
		ledgerRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ledger_rows_total",
			Help:      "Reconciled ledger rows by outcome.",
		}, []string{"status"}),
		ocrFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ocr_pass_failures_total",
			Help:      "Ensemble passes that failed and were skipped.",
		}, []string{"engine"}),
	}
}

func (m *Metrics) observeExtraction(trace utils.ExtractionTrace) {
	if m == nil {
		return
	}
	m.documents.Inc()

	vendor := "header"
	if !trace.VendorFound {
		vendor = "default"
	}
	m.fallbacks.WithLabelValues("vendor", vendor).Inc()
	m.fallbacks.WithLabelValues("amount", string(trace.AmountSource)).Inc()
	m.fallbacks.WithLabelValues("date", string(trace.DateSource)).Inc()
}

func (m *Metrics) observeLedgerRow(status dto.MatchStatus) {
	if m == nil {
		return
	}
	m.ledgerRows.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) observeOCRFailure(engine string) {
	if m == nil {
		return
	}
	m.ocrFailures.WithLabelValues(engine).Inc()
}
