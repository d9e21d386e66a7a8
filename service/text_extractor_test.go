package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"slices"
	"testing"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	name string
	text string
	err  error
}

func (f fakeEngine) Name() string { return f.name }

func (f fakeEngine) ExtractText(context.Context, image.Image) (string, error) {
	return f.text, f.err
}

type fakePDF struct {
	text   string
	pages  int
	imgErr error
}

func (f fakePDF) ExtractText([]byte) (string, error) { return f.text, nil }

func (f fakePDF) ExtractImages([]byte) ([]image.Image, error) {
	if f.imgErr != nil {
		return nil, f.imgErr
	}
	pages := make([]image.Image, f.pages)
	for i := range pages {
		pages[i] = image.NewGray(image.Rect(0, 0, 4, 4))
	}
	return pages, nil
}

type fakeQR struct{ payload string }

func (f fakeQR) Decode(image.Image) (string, error) {
	if f.payload == "" {
		return "", errors.New("no code")
	}
	return f.payload, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestTextExtractorImageEnsemble(t *testing.T) {
	metrics := NewMetrics(nil)
	extractor := NewTextExtractor(nil, []OCREngine{
		fakeEngine{name: "TESSERACT", text: "Acme Corp\nTotal: $42,480.00\n"},
		fakeEngine{name: "PADDLE", err: errors.New("service down")},
	}, fakeQR{payload: "Due 2019-06-19"}, metrics, nil)

	text := extractor.ReadText(context.Background(), dto.UploadedFile{Filename: "scan.PNG", Data: pngBytes(t)})

	assert.Contains(t, text, "--- TESSERACT OCR ---")
	assert.Contains(t, text, "--- QR PAYLOAD ---")
	assert.NotContains(t, text, "PADDLE")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ocrFailures.WithLabelValues("PADDLE")))

	// Banners never survive normalisation.
	assert.Equal(t, []string{"Acme Corp", "Total: $42,480.00", "Due 2019-06-19"}, slices.Collect(utils.CleanLines(text)))
}

func TestTextExtractorPDF(t *testing.T) {
	extractor := NewTextExtractor(
		fakePDF{text: "Globex Ltd\nAmount 310.00\n", pages: 2},
		[]OCREngine{fakeEngine{name: "TESSERACT", text: "Globex Ltd\n"}},
		nil, nil, nil,
	)

	text := extractor.ReadText(context.Background(), dto.UploadedFile{Filename: "globex.pdf"})

	assert.Contains(t, text, "--- DIGITAL TEXT ---")
	assert.Contains(t, text, "--- TESSERACT OCR PAGE 1 ---")
	assert.Contains(t, text, "--- TESSERACT OCR PAGE 2 ---")

	record := utils.ParseInvoice(dto.RawDocument{Identifier: "globex.pdf", Text: text})
	assert.Equal(t, "Globex Ltd", record.Vendor)
	assert.InDelta(t, 310.00, record.Amount, 0.001)
}

func TestTextExtractorPDFWithoutImages(t *testing.T) {
	extractor := NewTextExtractor(fakePDF{text: "Initech\n", imgErr: errors.New("encrypted")}, nil, nil, nil, nil)

	text := extractor.ReadText(context.Background(), dto.UploadedFile{Filename: "initech.pdf"})

	assert.Contains(t, text, "Initech")
}

func TestTextExtractorPlainText(t *testing.T) {
	extractor := NewTextExtractor(nil, nil, nil, nil, nil)

	text := extractor.ReadText(context.Background(), dto.UploadedFile{Filename: "ocr.txt", Data: []byte("Hooli Inc\nTotal 5.00")})

	assert.Equal(t, "Hooli Inc\nTotal 5.00", text)
}

func TestTextExtractorUnreadableImage(t *testing.T) {
	extractor := NewTextExtractor(nil, []OCREngine{fakeEngine{name: "TESSERACT", text: "never"}}, nil, nil, nil)

	text := extractor.ReadText(context.Background(), dto.UploadedFile{Filename: "broken.jpg", Data: []byte("not an image")})

	assert.Empty(t, text)
}
