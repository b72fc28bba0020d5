package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/reports"
	"pharmapos/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStockBalance handles GET /reports/stock-balance
func (h *ReportsHandler) GetStockBalance(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StockBalanceReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetStockBalance(ctx, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetExpiringStock handles GET /reports/expiring-stock
func (h *ReportsHandler) GetExpiringStock(c *gin.Context) {
	ctx := c.Request.Context()

	beforeStr := c.Query("before")
	if beforeStr == "" {
		h.Error(c, apperror.NewValidation("before is required"))
		return
	}

	before, err := time.Parse(time.RFC3339, beforeStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid before format, expected RFC3339"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	report, err := h.service.GetExpiringStock(ctx, before, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSalesSummary handles GET /reports/sales-summary
func (h *ReportsHandler) GetSalesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SalesSummaryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetSalesSummary(ctx, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetDocumentJournal handles GET /reports/document-journal
func (h *ReportsHandler) GetDocumentJournal(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DocumentJournalRequest
	if !h.BindQuery(c, &req) {
		return
	}

	journal, err := h.service.GetDocumentJournal(ctx, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, journal)
}

// GetReceipt handles GET /reports/receipt/:saleInvoiceId
// Returns the receipt payload for a posted sale; rendering is up to the client.
func (h *ReportsHandler) GetReceipt(c *gin.Context) {
	ctx := c.Request.Context()

	saleInvoiceID, err := id.Parse(c.Param("saleInvoiceId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid saleInvoiceId format"))
		return
	}

	receipt, err := h.service.GetReceipt(ctx, saleInvoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock-balance", h.GetStockBalance)
	rg.GET("/expiring-stock", h.GetExpiringStock)
	rg.GET("/sales-summary", h.GetSalesSummary)
	rg.GET("/document-journal", h.GetDocumentJournal)
	rg.GET("/receipt/:saleInvoiceId", h.GetReceipt)
}
