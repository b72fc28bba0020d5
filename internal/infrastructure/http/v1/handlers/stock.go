package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/registers/stock"
	"pharmapos/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
	repo    stock.Repository
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, repo stock.Repository) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
		repo:        repo,
	}
}

// GetBalances handles GET /registers/stock/balances
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	filter := stock.BalanceFilter{
		Batch:       c.Query("batch"),
		ExcludeZero: c.Query("excludeZero") != "false",
	}

	if pStr := c.Query("productId"); pStr != "" {
		productID, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductIDs = []id.ID{productID}
	}

	balances, err := h.repo.ListBalances(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StockBalanceListResponse{Items: balances})
}

// GetExpiring handles GET /registers/stock/expiring
func (h *StockHandler) GetExpiring(c *gin.Context) {
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

	balances, err := h.service.GetExpiringBatches(ctx, before)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StockBalanceListResponse{Items: balances})
}

// GetMovements handles GET /registers/stock/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	// Product is required for movement history
	productIDStr := c.Query("productId")
	if productIDStr == "" {
		h.Error(c, apperror.NewValidation("productId is required"))
		return
	}

	productID, err := id.Parse(productIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	filter := stock.MovementFilter{
		Batch:  c.Query("batch"),
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if rtStr := c.Query("recordType"); rtStr != "" {
		rt := entity.RecordType(rtStr)
		if rt != entity.RecordTypeReceipt && rt != entity.RecordTypeExpense {
			h.Error(c, apperror.NewValidation("invalid recordType, expected receipt or expense"))
			return
		}
		filter.RecordType = &rt
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		if parsed, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filter.FromDate = &parsed
		}
	}

	if toStr := c.Query("toDate"); toStr != "" {
		if parsed, err := time.Parse(time.RFC3339, toStr); err == nil {
			filter.ToDate = &parsed
		}
	}

	movements, err := h.service.GetMovementHistory(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StockMovementListResponse{
		Items:  movements,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetProductAvailability handles GET /registers/stock/availability/:productId
func (h *StockHandler) GetProductAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	quantity, err := h.service.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductAvailabilityResponse{
		ProductID: productID.String(),
		Quantity:  quantity,
	})
}

// RegisterRoutes registers stock register routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balances", h.GetBalances)
	rg.GET("/expiring", h.GetExpiring)
	rg.GET("/movements", h.GetMovements)
	rg.GET("/availability/:productId", h.GetProductAvailability)
}
