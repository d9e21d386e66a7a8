package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned text by filename.
type fakeReader struct {
	texts map[string]string
	calls atomic.Int32
}

func (f *fakeReader) ReadText(_ context.Context, file dto.UploadedFile) string {
	f.calls.Add(1)
	return f.texts[file.Filename]
}

func TestExtractRecordsKeepsInputOrder(t *testing.T) {
	service := NewExtractionService(nil, 4, nil, nil)

	docs := make([]dto.RawDocument, 20)
	for i := range docs {
		docs[i] = dto.RawDocument{
			Identifier: fmt.Sprintf("inv-%02d.txt", i),
			Text:       fmt.Sprintf("Vendor Number Pending\nTotal: %d.00", i+1),
		}
	}

	records, err := service.ExtractRecords(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, records, len(docs))

	for i, record := range records {
		assert.Equal(t, docs[i].Identifier, record.SourceFile)
		assert.InDelta(t, float64(i+1), record.Amount, 0.001)
	}
}

func TestExtractFiles(t *testing.T) {
	reader := &fakeReader{texts: map[string]string{
		"acme.png":   "Acme Corp\nJun 19, 2019\nTotal: $42,480.00",
		"globex.pdf": "Globex Ltd\n2019-07-01\nItem 10.00\nItem 299.50",
	}}
	metrics := NewMetrics(nil)
	service := NewExtractionService(reader, 2, metrics, nil)

	records, err := service.ExtractFiles(context.Background(), []dto.UploadedFile{
		{Filename: "acme.png"},
		{Filename: "globex.pdf"},
		{Filename: "unreadable.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Acme Corp", records[0].Vendor)
	assert.InDelta(t, 42480.00, records[0].Amount, 0.001)
	assert.Equal(t, "Jun 19, 2019", records[0].DateString())

	assert.Equal(t, "Globex Ltd", records[1].Vendor)
	assert.InDelta(t, 299.50, records[1].Amount, 0.001)
	assert.Equal(t, "2019-07-01", records[1].DateString())

	assert.Equal(t, dto.InvoiceRecord{SourceFile: "unreadable.jpg", Vendor: dto.DefaultVendor}, records[2])

	assert.Equal(t, int32(3), reader.calls.Load())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.documents))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fallbacks.WithLabelValues("vendor", "default")))
}

func TestExtractRecordsCancelled(t *testing.T) {
	service := NewExtractionService(nil, 1, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.ExtractRecords(ctx, []dto.RawDocument{{Identifier: "a.txt"}})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractRecordsEmpty(t *testing.T) {
	service := NewExtractionService(nil, 1, nil, nil)

	records, err := service.ExtractRecords(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, records)
}
