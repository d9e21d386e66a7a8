package utils

import (
	"github.com/Aashish23092/invoice-audit/dto"
)

// ExtractionTrace tells which fallback each extractor ended on.
type ExtractionTrace struct {
	VendorFound  bool
	AmountSource AmountSource
	DateSource   DateSource
}

// ParseInvoice extracts structured invoice data from raw OCR text. It never
// fails: fields that cannot be found keep their defaults.
func ParseInvoice(doc dto.RawDocument) dto.InvoiceRecord {
	record, _ := ParseInvoiceWithTrace(doc)
	return record
}

// ParseInvoiceWithTrace is ParseInvoice plus a record of which fallbacks fired.
func ParseInvoiceWithTrace(doc dto.RawDocument) (dto.InvoiceRecord, ExtractionTrace) {
	vendor, vendorFound := extractVendor(CleanLines(doc.Text))
	amount, amountSource := extractAmount(doc.Text)
	date, dateSource := extractDate(doc.Text)

	record := dto.InvoiceRecord{
		SourceFile: doc.Identifier,
		Vendor:     vendor,
		Date:       date,
		Amount:     amount,
	}
	trace := ExtractionTrace{
		VendorFound:  vendorFound,
		AmountSource: amountSource,
		DateSource:   dateSource,
	}
	return record, trace
}
