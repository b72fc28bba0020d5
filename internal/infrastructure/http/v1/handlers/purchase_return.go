package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/purchase_return"
	"pharmapos/internal/infrastructure/http/v1/dto"
)

// PurchaseReturnHandler handles HTTP requests for PurchaseReturn documents.
type PurchaseReturnHandler struct {
	*BaseDocumentHandler[*purchase_return.PurchaseReturn, dto.CreatePurchaseReturnRequest, dto.UpdatePurchaseReturnRequest]
	service *purchase_return.Service
}

// NewPurchaseReturnHandler creates a new purchase return handler.
func NewPurchaseReturnHandler(base *BaseHandler, service *purchase_return.Service) *PurchaseReturnHandler {
	cfg := BaseDocumentHandlerConfig[*purchase_return.PurchaseReturn, dto.CreatePurchaseReturnRequest, dto.UpdatePurchaseReturnRequest]{
		Service:    service,
		EntityName: "purchase-return",
		MapCreateDTO: func(req dto.CreatePurchaseReturnRequest) *purchase_return.PurchaseReturn {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePurchaseReturnRequest, existing *purchase_return.PurchaseReturn) *purchase_return.PurchaseReturn {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(doc *purchase_return.PurchaseReturn) any {
			return dto.FromPurchaseReturn(doc)
		},
		IsPostImmediately: func(req dto.CreatePurchaseReturnRequest) bool {
			return req.PostImmediately
		},
	}

	return &PurchaseReturnHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /document/purchase-return - list with filtering.
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase_return.ListFilter{
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

// Copy handles POST /document/purchase-return/:id/copy
func (h *PurchaseReturnHandler) Copy(c *gin.Context) {
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

	c.JSON(http.StatusCreated, dto.FromPurchaseReturn(draft))
}

// respondList sends paginated list response.
func (h *PurchaseReturnHandler) respondList(c *gin.Context, result domain.ListResult[*purchase_return.PurchaseReturn]) {
	items := make([]*dto.PurchaseReturnResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPurchaseReturn(doc)
	}

	c.JSON(http.StatusOK, dto.PurchaseReturnListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
