package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

const (
	amountColumn = "amount"
	dateColumn   = "date"
)

// LoadLedger parses a CSV or XLSX ledger. The Amount and Date columns are
// located by header name, ignoring case and surrounding whitespace; every
// other column is carried through untouched.
func LoadLedger(file dto.UploadedFile) (*dto.Ledger, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".csv":
		rows, err = readCSV(file.Data)
		if err != nil {
			return nil, err
		}
	case ".xlsx":
		rows, err = readWorkbook(file.Data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: ledger %s", dto.ErrUnsupportedFileType, file.Filename)
	}
	return buildLedger(rows)
}

func readCSV(data []byte) ([][]string, error) {
	reader := gocsv.LazyCSVReader(bytes.NewReader(data))
	if r, ok := reader.(*csv.Reader); ok {
		// Spreadsheet exports often drop trailing empty cells.
		r.FieldsPerRecord = -1
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV ledger: %w", err)
	}
	return rows, nil
}

// readWorkbook returns the rows of the first sheet.
func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX ledger: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX ledger has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func buildLedger(rows [][]string) (*dto.Ledger, error) {
	if len(rows) == 0 {
		return nil, dto.ErrLedgerColumns
	}

	columns := make([]string, len(rows[0]))
	amountIdx, dateIdx := -1, -1
	for i, header := range rows[0] {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		switch strings.ToLower(columns[i]) {
		case amountColumn:
			if amountIdx < 0 {
				amountIdx = i
			}
		case dateColumn:
			if dateIdx < 0 {
				dateIdx = i
			}
		}
	}
	if amountIdx < 0 || dateIdx < 0 {
		return nil, fmt.Errorf("%w: found %v", dto.ErrLedgerColumns, columns)
	}

	ledger := &dto.Ledger{Columns: columns}
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, len(columns))
		for i := range columns {
			cells[i] = cellAt(row, i)
		}
		ledger.Entries = append(ledger.Entries, dto.LedgerEntry{
			Row:    n + 1,
			Cells:  cells,
			Amount: cellAt(row, amountIdx),
			Date:   cellAt(row, dateIdx),
		})
	}
	return ledger, nil
}

// cellAt tolerates short rows, which both CSV (lazy) and XLSX produce.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
