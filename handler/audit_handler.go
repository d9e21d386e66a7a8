package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/service"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *service.AuditService
	limits       dto.UploadLimits
	logger       *log.Logger
}

func NewAuditHandler(auditService *service.AuditService, limits dto.UploadLimits, logger *log.Logger) *AuditHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &AuditHandler{
		auditService: auditService,
		limits:       limits,
		logger:       logger,
	}
}

// Extract handles POST /invoices/extract (bookkeeping mode).
func (h *AuditHandler) Extract(c *gin.Context) {
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid report format", err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.ExtractRequest{Files: form.File["files[]"]}
	if err := request.Validate(h.limits); err != nil {
		h.sendError(c, statusFor(err), "Invalid upload", err)
		return
	}

	files, err := readUploads(request.Files)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	h.logger.Info("bookkeeping request", "files", len(files), "format", format)
	response, err := h.auditService.Bookkeep(c.Request.Context(), files)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to extract invoices", err)
		return
	}

	h.render(c, format, response, func(w io.Writer) error {
		return service.WriteExtractReport(w, format, response)
	})
}

// Reconcile handles POST /audit/reconcile (audit mode).
func (h *AuditHandler) Reconcile(c *gin.Context) {
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid report format", err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.AuditRequest{Files: form.File["files[]"]}
	if ledgers := form.File["ledger"]; len(ledgers) > 0 {
		request.Ledger = ledgers[0]
	}
	if err := request.Validate(h.limits); err != nil {
		h.sendError(c, statusFor(err), "Invalid upload", err)
		return
	}

	files, err := readUploads(request.Files)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}
	ledger, err := readUpload(request.Ledger)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read ledger", err)
		return
	}

	h.logger.Info("audit request", "files", len(files), "ledger", ledger.Filename, "format", format)
	response, err := h.auditService.Audit(c.Request.Context(), files, &ledger)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to reconcile ledger", err)
		return
	}

	h.render(c, format, response, func(w io.Writer) error {
		return service.WriteAuditReport(w, format, response)
	})
}

func (h *AuditHandler) render(c *gin.Context, format service.ReportFormat, response any, write func(io.Writer) error) {
	if format == service.FormatJSON {
		c.JSON(http.StatusOK, response)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to render report", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func readUploads(headers []*multipart.FileHeader) ([]dto.UploadedFile, error) {
	files := make([]dto.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader) (dto.UploadedFile, error) {
	f, err := header.Open()
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("failed to open file %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("failed to read file %s: %w", header.Filename, err)
	}
	return dto.UploadedFile{Filename: header.Filename, Data: data}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrLedgerColumns):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrLedgerRequired),
		errors.Is(err, dto.ErrNoFiles),
		errors.Is(err, dto.ErrTooManyFiles),
		errors.Is(err, dto.ErrUnsupportedFileType),
		errors.Is(err, dto.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends a structured error response
func (h *AuditHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Error(message, "error", err, "status", statusCode)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "AUDIT_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
