package service

import (
	"strings"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/utils"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultMatchTolerance is the absolute amount difference below which a
// ledger row and an invoice are considered the same transaction.
var DefaultMatchTolerance = decimal.NewFromInt(1)

type ReconcileOptions struct {
	Tolerance decimal.Decimal
	// RequireDateMatch makes the loose date comparison part of the match
	// decision instead of an informational flag.
	RequireDateMatch bool
	Workers          int
}

type ReconcileService struct {
	tolerance   decimal.Decimal
	requireDate bool
	workers     int
	metrics     *Metrics
	logger      *log.Logger
}

func NewReconcileService(opts ReconcileOptions, metrics *Metrics, logger *log.Logger) *ReconcileService {
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = DefaultMatchTolerance
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ReconcileService{
		tolerance:   opts.Tolerance,
		requireDate: opts.RequireDateMatch,
		workers:     opts.Workers,
		metrics:     metrics,
		logger:      logger,
	}
}

// Reconcile annotates every ledger entry in place and returns the totals.
// Rows are matched concurrently; each goroutine writes only its own entry and
// records is never modified.
func (s *ReconcileService) Reconcile(ledger *dto.Ledger, records []dto.InvoiceRecord) (dto.ReconcileSummary, error) {
	if ledger == nil {
		return dto.ReconcileSummary{}, dto.ErrLedgerRequired
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range ledger.Entries {
		g.Go(func() error {
			entry := &ledger.Entries[i]
			entry.Annotation = s.MatchEntry(*entry, records)
			return nil
		})
	}
	_ = g.Wait()

	summary := dto.ReconcileSummary{TotalRows: len(ledger.Entries)}
	for _, entry := range ledger.Entries {
		s.metrics.observeLedgerRow(entry.Annotation.Status)
		switch entry.Annotation.Status {
		case dto.StatusMatched:
			summary.MatchedRows++
			if !entry.Annotation.DateMatch {
				summary.DateMismatch++
			}
		default:
			summary.MissingRows++
		}
	}

	s.logger.Info("ledger reconciled",
		"rows", summary.TotalRows,
		"matched", summary.MatchedRows,
		"missing", summary.MissingRows,
		"date_mismatch", summary.DateMismatch)
	return summary, nil
}

// MatchEntry finds the first record, in order, whose amount is within
// tolerance of the entry's amount. Later candidates are never considered.
func (s *ReconcileService) MatchEntry(entry dto.LedgerEntry, records []dto.InvoiceRecord) dto.MatchAnnotation {
	amount := decimal.NewFromFloat(utils.ParseLedgerAmount(entry.Amount))
	ledgerDate := strings.ToLower(entry.Date)

	for _, record := range records {
		diff := amount.Sub(decimal.NewFromFloat(record.Amount)).Abs()
		if !diff.LessThan(s.tolerance) {
			continue
		}

		dateMatch := utils.CompareDates(record.DateString(), ledgerDate)
		if s.requireDate && !dateMatch {
			continue
		}
		return dto.MatchAnnotation{
			Status:     dto.StatusMatched,
			LinkedFile: record.SourceFile,
			DateMatch:  dateMatch,
		}
	}

	return dto.MatchAnnotation{Status: dto.StatusMissing}
}
