package service

import (
	"github.com/Aashish23092/invoice-audit/client"
	"github.com/Aashish23092/invoice-audit/config"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Build wires the OCR clients and services from cfg. The returned cleanup
// releases the Tesseract engine.
func Build(cfg *config.Config, reg prometheus.Registerer, logger *log.Logger) (*AuditService, func()) {
	metrics := NewMetrics(reg)

	tesseract := client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage, logger.WithPrefix("tesseract"))
	engines := []OCREngine{tesseract}
	if cfg.PaddleAPIURL != "" {
		engines = append(engines, client.NewPaddleClient(cfg.PaddleAPIURL, nil, logger.WithPrefix("paddle")))
	}

	extractor := NewTextExtractor(NewPDFProcessor(), engines, client.NewQRClient(), metrics, logger)
	extraction := NewExtractionService(extractor, cfg.ExtractWorkers, metrics, logger)
	reconciler := NewReconcileService(ReconcileOptions{
		Tolerance:        cfg.MatchTolerance,
		RequireDateMatch: cfg.RequireDateMatch,
		Workers:          cfg.ExtractWorkers,
	}, metrics, logger)

	logger.Info("pipeline ready",
		"engines", len(engines),
		"workers", cfg.ExtractWorkers,
		"tolerance", cfg.MatchTolerance,
		"require_date_match", cfg.RequireDateMatch)
	return NewAuditService(extraction, reconciler, logger), tesseract.Close
}
