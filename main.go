package main

import (
	"os"

	"github.com/Aashish23092/invoice-audit/config"
	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/handler"
	"github.com/Aashish23092/invoice-audit/service"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "invoice-audit",
	})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, keeping info", "level", cfg.LogLevel)
	}

	auditService, cleanup := service.Build(cfg, prometheus.DefaultRegisterer, logger)
	defer cleanup()

	auditHandler := handler.NewAuditHandler(auditService, dto.UploadLimits{
		MaxFiles:    cfg.MaxFiles,
		MaxFileSize: cfg.MaxFileSize,
	}, logger.WithPrefix("http"))

	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Invoice Audit",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/invoices/extract", auditHandler.Extract)
		api.POST("/audit/reconcile", auditHandler.Reconcile)
	}

	logger.Info("starting server", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
