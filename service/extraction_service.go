package service

import (
	"context"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/utils"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// TextReader turns an uploaded file into the raw text the parsers work on.
type TextReader interface {
	ReadText(ctx context.Context, file dto.UploadedFile) string
}

// ExtractionService runs text extraction and parsing over a bounded pool of
// workers. Output order always follows input order.
type ExtractionService struct {
	reader  TextReader
	workers int
	metrics *Metrics
	logger  *log.Logger
}

func NewExtractionService(reader TextReader, workers int, metrics *Metrics, logger *log.Logger) *ExtractionService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ExtractionService{
		reader:  reader,
		workers: workers,
		metrics: metrics,
		logger:  logger,
	}
}

// ExtractRecords parses already-extracted text. It only fails when ctx is
// cancelled before every document has been parsed.
func (s *ExtractionService) ExtractRecords(ctx context.Context, docs []dto.RawDocument) ([]dto.InvoiceRecord, error) {
	return s.run(ctx, len(docs), func(_ context.Context, i int) dto.RawDocument {
		return docs[i]
	})
}

// ExtractFiles reads every file through the TextReader and parses the result.
func (s *ExtractionService) ExtractFiles(ctx context.Context, files []dto.UploadedFile) ([]dto.InvoiceRecord, error) {
	return s.run(ctx, len(files), func(ctx context.Context, i int) dto.RawDocument {
		return dto.RawDocument{
			Identifier: files[i].Filename,
			Text:       s.reader.ReadText(ctx, files[i]),
		}
	})
}

func (s *ExtractionService) run(ctx context.Context, n int, load func(context.Context, int) dto.RawDocument) ([]dto.InvoiceRecord, error) {
	records := make([]dto.InvoiceRecord, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc := load(ctx, i)
			record, trace := utils.ParseInvoiceWithTrace(doc)
			records[i] = record

			s.metrics.observeExtraction(trace)
			s.logger.Debug("invoice extracted",
				"file", doc.Identifier,
				"vendor", record.Vendor,
				"amount", record.Amount,
				"amount_source", trace.AmountSource,
				"date_source", trace.DateSource)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
