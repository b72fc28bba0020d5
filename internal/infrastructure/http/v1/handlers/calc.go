package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmapos/internal/infrastructure/http/v1/dto"
)

// CalcHandler serves the stateless form recalculation endpoints. The form
// posts its current state after every edit and renders whatever comes back.
type CalcHandler struct {
	*BaseHandler
}

// NewCalcHandler creates a new calc handler.
func NewCalcHandler(base *BaseHandler) *CalcHandler {
	return &CalcHandler{BaseHandler: base}
}

// RecalcPurchaseInvoice handles POST /calc/purchase-invoice
func (h *CalcHandler) RecalcPurchaseInvoice(c *gin.Context) {
	var req dto.RecalcPurchaseInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, req.Recalc())
}

// RecalcPurchaseReturn handles POST /calc/purchase-return
func (h *CalcHandler) RecalcPurchaseReturn(c *gin.Context) {
	var req dto.RecalcPurchaseReturnRequest
	if !h.BindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, req.Recalc())
}

// RecalcSale handles POST /calc/sale
// Shared by sale invoices and sale returns.
func (h *CalcHandler) RecalcSale(c *gin.Context) {
	var req dto.RecalcSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, req.Recalc())
}

// RegisterRoutes registers calc routes.
func (h *CalcHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase-invoice", h.RecalcPurchaseInvoice)
	rg.POST("/purchase-return", h.RecalcPurchaseReturn)
	rg.POST("/sale", h.RecalcSale)
}
