package service

import (
	"context"
	"testing"
	"time"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditService(texts map[string]string) *AuditService {
	extraction := NewExtractionService(&fakeReader{texts: texts}, 2, nil, nil)
	reconciler := NewReconcileService(ReconcileOptions{Workers: 2}, nil, nil)
	service := NewAuditService(extraction, reconciler, nil)
	service.now = func() time.Time { return time.Date(2019, 7, 1, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestBookkeep(t *testing.T) {
	service := newTestAuditService(map[string]string{
		"acme.pdf": "Acme Corp\nJun 19, 2019\nTotal: $42,480.00",
	})

	resp, err := service.Bookkeep(context.Background(), []dto.UploadedFile{{Filename: "acme.pdf"}})
	require.NoError(t, err)

	require.Len(t, resp.Records, 1)
	assert.Equal(t, dto.StatusAutoCreated, resp.Records[0].MatchStatus)
	assert.Equal(t, "Acme Corp", resp.Records[0].Vendor)
	assert.Equal(t, "2019-07-01T12:00:00Z", resp.ProcessedAt)
}

func TestAudit(t *testing.T) {
	service := newTestAuditService(map[string]string{
		"acme.pdf":   "Acme Corp\nJun 19, 2019\nTotal: $42,480.00",
		"globex.png": "Globex Ltd\n2019-07-01\nBalance Due 310.00",
	})
	ledger := &dto.UploadedFile{
		Filename: "ledger.csv",
		Data:     []byte("Date,Amount,Memo\nJun 19 2019,42480.50,Acme\n2019-07-01,310.00,Globex\n2019-07-09,99.00,Lunch\n"),
	}

	resp, err := service.Audit(context.Background(), []dto.UploadedFile{{Filename: "acme.pdf"}, {Filename: "globex.png"}}, ledger)
	require.NoError(t, err)

	assert.Equal(t, dto.ReconcileSummary{TotalRows: 3, MatchedRows: 2, MissingRows: 1, DateMismatch: 0}, resp.Summary)
	assert.Equal(t, "acme.pdf", resp.Ledger.Entries[0].Annotation.LinkedFile)
	assert.Equal(t, "globex.png", resp.Ledger.Entries[1].Annotation.LinkedFile)
	assert.Equal(t, dto.StatusMissing, resp.Ledger.Entries[2].Annotation.Status)
	assert.Len(t, resp.Records, 2)
}

func TestAuditRequiresLedger(t *testing.T) {
	service := newTestAuditService(nil)

	_, err := service.Audit(context.Background(), []dto.UploadedFile{{Filename: "acme.pdf"}}, nil)

	assert.ErrorIs(t, err, dto.ErrLedgerRequired)
}

func TestAuditRejectsLedgerWithoutColumns(t *testing.T) {
	reader := &fakeReader{}
	service := NewAuditService(
		NewExtractionService(reader, 1, nil, nil),
		NewReconcileService(ReconcileOptions{}, nil, nil),
		nil,
	)

	_, err := service.Audit(context.Background(), []dto.UploadedFile{{Filename: "a.pdf"}},
		&dto.UploadedFile{Filename: "ledger.csv", Data: []byte("When,Total\n2019-01-01,5\n")})

	assert.ErrorIs(t, err, dto.ErrLedgerColumns)
	assert.Zero(t, reader.calls.Load())
}
