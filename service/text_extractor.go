package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/charmbracelet/log"
)

// OCREngine is one recogniser in the ensemble.
type OCREngine interface {
	Name() string
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// QRDecoder reads machine-readable payloads off a page.
type QRDecoder interface {
	Decode(img image.Image) (string, error)
}

// TextExtractor builds a document's raw text by running every available pass
// and concatenating the results behind banners. The banners are stripped
// again by the line normaliser, so redundant passes only add signal.
type TextExtractor struct {
	pdf     PDFProcessor
	engines []OCREngine
	qr      QRDecoder
	metrics *Metrics
	logger  *log.Logger
}

func NewTextExtractor(pdf PDFProcessor, engines []OCREngine, qr QRDecoder, metrics *Metrics, logger *log.Logger) *TextExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &TextExtractor{
		pdf:     pdf,
		engines: engines,
		qr:      qr,
		metrics: metrics,
		logger:  logger,
	}
}

func banner(title string) string {
	return "\n====================\n--- " + title + " ---\n====================\n"
}

// ReadText never fails; passes that error are logged and skipped.
func (e *TextExtractor) ReadText(ctx context.Context, file dto.UploadedFile) string {
	logger := e.logger.With("file", file.Filename)

	var text strings.Builder
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".txt":
		return string(file.Data)
	case ".pdf":
		e.readPDF(ctx, logger, file.Data, &text)
	default:
		img, _, err := image.Decode(bytes.NewReader(file.Data))
		if err != nil {
			logger.Warn("unreadable image", "error", err)
			e.metrics.observeOCRFailure("decode")
			return ""
		}
		e.readImage(ctx, logger, img, "", &text)
	}

	if text.Len() == 0 {
		logger.Warn("no text extracted from any pass")
	}
	return text.String()
}

func (e *TextExtractor) readPDF(ctx context.Context, logger *log.Logger, data []byte, text *strings.Builder) {
	if e.pdf == nil {
		return
	}

	digital, err := e.pdf.ExtractText(data)
	if err != nil {
		logger.Warn("pdf text layer failed", "error", err)
		e.metrics.observeOCRFailure("pdf_text")
	} else if strings.TrimSpace(digital) != "" {
		text.WriteString(banner("DIGITAL TEXT"))
		text.WriteString(digital)
	}

	pages, err := e.pdf.ExtractImages(data)
	if err != nil {
		logger.Warn("pdf image extraction failed", "error", err)
		e.metrics.observeOCRFailure("pdf_images")
		return
	}
	for i, page := range pages {
		e.readImage(ctx, logger, page, fmt.Sprintf(" PAGE %d", i+1), text)
	}
}

func (e *TextExtractor) readImage(ctx context.Context, logger *log.Logger, img image.Image, suffix string, text *strings.Builder) {
	for _, engine := range e.engines {
		if ctx.Err() != nil {
			return
		}
		out, err := engine.ExtractText(ctx, img)
		if err != nil {
			logger.Warn("ocr pass failed", "engine", engine.Name(), "error", err)
			e.metrics.observeOCRFailure(engine.Name())
			continue
		}
		text.WriteString(banner(engine.Name() + " OCR" + suffix))
		text.WriteString(out)
	}

	if e.qr == nil {
		return
	}
	// Most invoices carry no QR code, so a miss is not worth a warning.
	if payload, err := e.qr.Decode(img); err == nil && payload != "" {
		text.WriteString(banner("QR PAYLOAD" + suffix))
		text.WriteString(payload)
		text.WriteString("\n")
	}
}
