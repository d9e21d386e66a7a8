package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/charmbracelet/log"
)

// AuditService runs the two processing modes: bookkeeping turns invoices into
// records, audit additionally verifies a ledger against them.
type AuditService struct {
	extraction *ExtractionService
	reconciler *ReconcileService
	logger     *log.Logger
	now        func() time.Time
}

func NewAuditService(extraction *ExtractionService, reconciler *ReconcileService, logger *log.Logger) *AuditService {
	if logger == nil {
		logger = log.Default()
	}
	return &AuditService{
		extraction: extraction,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
}

// Bookkeep extracts every invoice and marks it as a newly created entry.
func (s *AuditService) Bookkeep(ctx context.Context, files []dto.UploadedFile) (*dto.ExtractResponse, error) {
	records, err := s.extraction.ExtractFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	rows := make([]dto.BookkeepingRow, len(records))
	for i, record := range records {
		rows[i] = dto.BookkeepingRow{InvoiceRecord: record, MatchStatus: dto.StatusAutoCreated}
	}

	s.logger.Info("bookkeeping completed", "files", len(files))
	return &dto.ExtractResponse{
		Records:     rows,
		ProcessedAt: dto.Timestamp(s.now()),
	}, nil
}

// Audit reconciles ledger against the extracted invoices. The ledger is
// parsed before any OCR runs so a malformed ledger fails fast.
func (s *AuditService) Audit(ctx context.Context, files []dto.UploadedFile, ledgerFile *dto.UploadedFile) (*dto.AuditResponse, error) {
	if ledgerFile == nil {
		return nil, dto.ErrLedgerRequired
	}
	ledger, err := LoadLedger(*ledgerFile)
	if err != nil {
		return nil, err
	}

	records, err := s.extraction.ExtractFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	summary, err := s.reconciler.Reconcile(ledger, records)
	if err != nil {
		return nil, err
	}

	s.logger.Info("audit completed", "files", len(files), "ledger", ledgerFile.Filename)
	return &dto.AuditResponse{
		Ledger:      *ledger,
		Records:     records,
		Summary:     summary,
		ProcessedAt: dto.Timestamp(s.now()),
	}, nil
}
