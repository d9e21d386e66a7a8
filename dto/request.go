package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	invoiceExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".txt"}
	ledgerExtensions  = []string{".csv", ".xlsx"}
)

// UploadLimits bounds a single request.
type UploadLimits struct {
	MaxFiles    int
	MaxFileSize int64
}

// ExtractRequest is the bookkeeping-mode upload.
type ExtractRequest struct {
	Files []*multipart.FileHeader `form:"files[]"`
}

// Validate performs basic validation on the request
func (r *ExtractRequest) Validate(limits UploadLimits) error {
	return validateInvoices(r.Files, limits)
}

// AuditRequest is the audit-mode upload: invoices plus the ledger to verify.
type AuditRequest struct {
	Files  []*multipart.FileHeader `form:"files[]"`
	Ledger *multipart.FileHeader   `form:"ledger"`
}

// Validate performs basic validation on the request
func (r *AuditRequest) Validate(limits UploadLimits) error {
	if err := validateInvoices(r.Files, limits); err != nil {
		return err
	}
	if r.Ledger == nil {
		return ErrLedgerRequired
	}
	if !HasExtension(r.Ledger.Filename, ledgerExtensions) {
		return fmt.Errorf("%w: ledger %s (supported: CSV, XLSX)", ErrUnsupportedFileType, r.Ledger.Filename)
	}
	return nil
}

func validateInvoices(files []*multipart.FileHeader, limits UploadLimits) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
		return fmt.Errorf("%w: %d files (limit %d)", ErrTooManyFiles, len(files), limits.MaxFiles)
	}
	for _, f := range files {
		if limits.MaxFileSize > 0 && f.Size > limits.MaxFileSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Filename)
		}
		if !HasExtension(f.Filename, invoiceExtensions) {
			return fmt.Errorf("%w: %s (supported: PDF, PNG, JPG, TXT)", ErrUnsupportedFileType, f.Filename)
		}
	}
	return nil
}

// HasExtension reports whether filename ends in one of exts, ignoring case.
func HasExtension(filename string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
