package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/sale_return"
	"pharmapos/internal/infrastructure/http/v1/dto"
)

// SaleReturnHandler handles HTTP requests for SaleReturn documents.
type SaleReturnHandler struct {
	*BaseDocumentHandler[*sale_return.SaleReturn, dto.CreateSaleReturnRequest, dto.UpdateSaleReturnRequest]
	service *sale_return.Service
}

// NewSaleReturnHandler creates a new sale return handler.
func NewSaleReturnHandler(base *BaseHandler, service *sale_return.Service) *SaleReturnHandler {
	cfg := BaseDocumentHandlerConfig[*sale_return.SaleReturn, dto.CreateSaleReturnRequest, dto.UpdateSaleReturnRequest]{
		Service:    service,
		EntityName: "sale-return",
		MapCreateDTO: func(req dto.CreateSaleReturnRequest) *sale_return.SaleReturn {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSaleReturnRequest, existing *sale_return.SaleReturn) *sale_return.SaleReturn {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(doc *sale_return.SaleReturn) any {
			return dto.FromSaleReturn(doc)
		},
		IsPostImmediately: func(req dto.CreateSaleReturnRequest) bool {
			return req.PostImmediately
		},
	}

	return &SaleReturnHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /document/sale-return - list with filtering.
func (h *SaleReturnHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sale_return.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if customerID := c.Query("customerId"); customerID != "" {
		if parsed, err := id.Parse(customerID); err == nil {
			filter.CustomerID = &parsed
		}
	}

	if number := c.Query("originalSaleNumber"); number != "" {
		filter.OriginalSaleNumber = &number
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

// Copy handles POST /document/sale-return/:id/copy
func (h *SaleReturnHandler) Copy(c *gin.Context) {
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

	c.JSON(http.StatusCreated, dto.FromSaleReturn(draft))
}

// respondList sends paginated list response.
func (h *SaleReturnHandler) respondList(c *gin.Context, result domain.ListResult[*sale_return.SaleReturn]) {
	items := make([]*dto.SaleReturnResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromSaleReturn(doc)
	}

	c.JSON(http.StatusOK, dto.SaleReturnListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
