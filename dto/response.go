package dto

import "errors"

// Custom errors
var (
	ErrLedgerRequired      = errors.New("a ledger file is required for reconciliation")
	ErrNoFiles             = errors.New("no invoice files provided")
	ErrTooManyFiles        = errors.New("too many files")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrLedgerColumns       = errors.New("ledger must have Amount and Date columns")
	ErrUnsupportedFormat   = errors.New("unsupported report format")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// BookkeepingRow is an extracted record as it appears in the bookkeeping report.
type BookkeepingRow struct {
	InvoiceRecord
	MatchStatus MatchStatus `json:"match_status"`
}

// ExtractResponse is returned in bookkeeping mode.
type ExtractResponse struct {
	Records     []BookkeepingRow `json:"records"`
	ProcessedAt string           `json:"processed_at"`
}

// AuditResponse is returned in audit mode.
type AuditResponse struct {
	Ledger      Ledger           `json:"ledger"`
	Records     []InvoiceRecord  `json:"records"`
	Summary     ReconcileSummary `json:"summary"`
	ProcessedAt string           `json:"processed_at"`
}
