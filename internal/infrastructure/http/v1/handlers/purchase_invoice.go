package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/purchase_invoice"
	"pharmapos/internal/infrastructure/http/v1/dto"
)

// PurchaseInvoiceHandler handles HTTP requests for PurchaseInvoice documents.
type PurchaseInvoiceHandler struct {
	*BaseDocumentHandler[*purchase_invoice.PurchaseInvoice, dto.CreatePurchaseInvoiceRequest, dto.UpdatePurchaseInvoiceRequest]
	service *purchase_invoice.Service
}

// NewPurchaseInvoiceHandler creates a new purchase invoice handler.
func NewPurchaseInvoiceHandler(base *BaseHandler, service *purchase_invoice.Service) *PurchaseInvoiceHandler {
	cfg := BaseDocumentHandlerConfig[*purchase_invoice.PurchaseInvoice, dto.CreatePurchaseInvoiceRequest, dto.UpdatePurchaseInvoiceRequest]{
		Service:    service,
		EntityName: "purchase-invoice",
		MapCreateDTO: func(req dto.CreatePurchaseInvoiceRequest) *purchase_invoice.PurchaseInvoice {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePurchaseInvoiceRequest, existing *purchase_invoice.PurchaseInvoice) *purchase_invoice.PurchaseInvoice {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(doc *purchase_invoice.PurchaseInvoice) any {
			return dto.FromPurchaseInvoice(doc)
		},
		IsPostImmediately: func(req dto.CreatePurchaseInvoiceRequest) bool {
			return req.PostImmediately
		},
	}

	return &PurchaseInvoiceHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /document/purchase-invoice - list with filtering.
func (h *PurchaseInvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase_invoice.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if supplierID := c.Query("supplierId"); supplierID != "" {
		if parsed, err := id.Parse(supplierID); err == nil {
			filter.SupplierID = &parsed
		}
	}

	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		filter.Posted = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result)
}

// Copy handles POST /document/purchase-invoice/:id/copy
func (h *PurchaseInvoiceHandler) Copy(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	draft, err := h.service.Copy(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, draft); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPurchaseInvoice(draft))
}

// respondList sends paginated list response.
func (h *PurchaseInvoiceHandler) respondList(c *gin.Context, result domain.ListResult[*purchase_invoice.PurchaseInvoice]) {
	items := make([]*dto.PurchaseInvoiceResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPurchaseInvoice(doc)
	}

	c.JSON(http.StatusOK, dto.PurchaseInvoiceListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
