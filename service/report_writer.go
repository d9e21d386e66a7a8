package service

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
)

const (
	reportBaseName    = "vouchai_report"
	matchStatusColumn = "Match Status"
	linkedFileColumn  = "Linked File"
)

// ParseReportFormat accepts json, csv or xlsx in any case. Empty means json.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: json, csv, xlsx)", dto.ErrUnsupportedFormat, s)
	}
}

func (f ReportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Filename is the download name for a report in this format.
func (f ReportFormat) Filename() string {
	return reportBaseName + "." + string(f)
}

type bookkeepingCSVRow struct {
	File        string `csv:"File"`
	Vendor      string `csv:"Vendor"`
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	InvoiceNo   string `csv:"Invoice_No"`
	MatchStatus string `csv:"Match Status"`
}

func toBookkeepingCSVRows(rows []dto.BookkeepingRow) []bookkeepingCSVRow {
	out := make([]bookkeepingCSVRow, len(rows))
	for i, row := range rows {
		invoiceNo := ""
		if row.InvoiceNumber != nil {
			invoiceNo = *row.InvoiceNumber
		}
		out[i] = bookkeepingCSVRow{
			File:        row.SourceFile,
			Vendor:      row.Vendor,
			Date:        row.DateString(),
			Amount:      formatAmount(row.Amount),
			InvoiceNo:   invoiceNo,
			MatchStatus: string(row.MatchStatus),
		}
	}
	return out
}

// WriteExtractReport renders the bookkeeping table.
func WriteExtractReport(w io.Writer, format ReportFormat, resp *dto.ExtractResponse) error {
	rows := toBookkeepingCSVRows(resp.Records)
	switch format {
	case FormatCSV:
		return gocsv.Marshal(rows, w)
	case FormatXLSX:
		table := [][]string{{"File", "Vendor", "Date", "Amount", "Invoice_No", matchStatusColumn}}
		for _, r := range rows {
			table = append(table, []string{r.File, r.Vendor, r.Date, r.Amount, r.InvoiceNo, r.MatchStatus})
		}
		return writeWorkbook(w, "Bookkeeping", table)
	default:
		return writeJSON(w, resp)
	}
}

// WriteAuditReport renders the annotated ledger with its original columns
// followed by the match status and linked file.
func WriteAuditReport(w io.Writer, format ReportFormat, resp *dto.AuditResponse) error {
	switch format {
	case FormatCSV:
		writer := gocsv.DefaultCSVWriter(w)
		for _, row := range auditTable(&resp.Ledger) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	case FormatXLSX:
		return writeWorkbook(w, "Audit", auditTable(&resp.Ledger))
	default:
		return writeJSON(w, resp)
	}
}

func auditTable(ledger *dto.Ledger) [][]string {
	header := slices.Clone(ledger.Columns)
	if !slices.Contains(header, matchStatusColumn) {
		header = append(header, matchStatusColumn)
	}
	if !slices.Contains(header, linkedFileColumn) {
		header = append(header, linkedFileColumn)
	}

	table := make([][]string, 0, len(ledger.Entries)+1)
	table = append(table, header)
	for _, entry := range ledger.Entries {
		row := make([]string, len(header))
		for i, column := range header {
			switch column {
			case matchStatusColumn:
				row[i] = string(entry.Annotation.Status)
			case linkedFileColumn:
				row[i] = entry.Annotation.LinkedFile
			default:
				if i < len(entry.Cells) {
					row[i] = entry.Cells[i]
				}
			}
		}
		table = append(table, row)
	}
	return table
}

func writeWorkbook(w io.Writer, sheet string, table [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
