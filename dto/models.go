package dto

import "time"

// DefaultVendor is used when no header line qualifies as a vendor name.
const DefaultVendor = "Unknown Vendor"

// RawDocument is the text produced by the OCR ensemble for one uploaded file.
type RawDocument struct {
	Identifier string `json:"identifier"`
	Text       string `json:"text"`
}

// InvoiceRecord holds the fields extracted from a single document.
// Date keeps the substring exactly as it appeared in the text.
type InvoiceRecord struct {
	SourceFile    string  `json:"file"`
	Vendor        string  `json:"vendor"`
	Date          *string `json:"date"`
	Amount        float64 `json:"amount"`
	InvoiceNumber *string `json:"invoice_no"`
}

// DateString returns the extracted date or an empty string.
func (r InvoiceRecord) DateString() string {
	if r.Date == nil {
		return ""
	}
	return *r.Date
}

type MatchStatus string

const (
	StatusMatched     MatchStatus = "Matched"
	StatusMissing     MatchStatus = "Missing"
	StatusAutoCreated MatchStatus = "Auto-Created"
)

// MatchAnnotation is attached to every ledger entry by the matcher.
// DateMatch is informational unless the date policy is enabled.
type MatchAnnotation struct {
	Status     MatchStatus `json:"match_status"`
	LinkedFile string      `json:"linked_file"`
	DateMatch  bool        `json:"date_match"`
}

// LedgerEntry is one row of the uploaded ledger. Cells is aligned with
// Ledger.Columns so repeated or blank headers keep their own values.
type LedgerEntry struct {
	Row        int             `json:"row"`
	Cells      []string        `json:"cells"`
	Amount     string          `json:"amount"`
	Date       string          `json:"date"`
	Annotation MatchAnnotation `json:"annotation"`
}

// Ledger is the table of expected transactions in its original column order.
type Ledger struct {
	Columns []string      `json:"columns"`
	Entries []LedgerEntry `json:"entries"`
}

type ReconcileSummary struct {
	TotalRows    int `json:"total_rows"`
	MatchedRows  int `json:"matched_rows"`
	MissingRows  int `json:"missing_rows"`
	DateMismatch int `json:"date_mismatch"`
}

// UploadedFile is a document read from a request or from disk.
type UploadedFile struct {
	Filename string
	Data     []byte
}

type ProcessingMode string

const (
	ModeBookkeeping ProcessingMode = "bookkeeping"
	ModeAudit       ProcessingMode = "audit"
)

// Timestamp formats a processing time the way every response does.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
