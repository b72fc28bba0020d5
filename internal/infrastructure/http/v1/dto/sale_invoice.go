package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/sale_invoice"
)

// --- Request DTOs ---

// CreateSaleInvoiceRequest represents a request to create a sale invoice.
// CustomerID is omitted for walk-in sales.
type CreateSaleInvoiceRequest struct {
	Number          string            `json:"number,omitempty"`
	Date            *time.Time        `json:"date,omitempty"`
	CustomerID      *string           `json:"customerId,omitempty"`
	DiscountPercent calc.Cell         `json:"discount_percentage"`
	TaxPercent      calc.Cell         `json:"tax_percentage"`
	Comment         string            `json:"comment,omitempty"`
	Lines           []calc.SaleLine   `json:"lines" binding:"required,min=1"`
	Attributes      entity.Attributes `json:"attributes"`
	PostImmediately bool              `json:"postImmediately,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateSaleInvoiceRequest) ToEntity() *sale_invoice.SaleInvoice {
	var customerID *id.ID
	if r.CustomerID != nil {
		if parsed, err := id.Parse(*r.CustomerID); err == nil {
			customerID = &parsed
		}
	}

	doc := sale_invoice.NewSaleInvoice(customerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Comment = r.Comment
	doc.Attributes = r.Attributes

	for _, line := range r.Lines {
		doc.AddLine(line)
	}

	doc.SaleTotals.DiscountPercent = r.DiscountPercent
	doc.SaleTotals.TaxPercent = r.TaxPercent
	doc.RecalcTotals(calc.FieldNone)

	return doc
}

// UpdateSaleInvoiceRequest represents a request to update a sale invoice.
type UpdateSaleInvoiceRequest struct {
	Number          *string           `json:"number,omitempty"`
	Date            *time.Time        `json:"date,omitempty"`
	CustomerID      *string           `json:"customerId,omitempty"`
	DiscountPercent *calc.Cell        `json:"discount_percentage,omitempty"`
	TaxPercent      *calc.Cell        `json:"tax_percentage,omitempty"`
	Comment         *string           `json:"comment,omitempty"`
	Lines           []calc.SaleLine   `json:"lines,omitempty"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity. An empty customerId string
// clears the customer, turning the sale into a walk-in.
func (r *UpdateSaleInvoiceRequest) ApplyTo(doc *sale_invoice.SaleInvoice) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.CustomerID != nil {
		if *r.CustomerID == "" {
			doc.CustomerID = nil
		} else if parsed, err := id.Parse(*r.CustomerID); err == nil {
			doc.CustomerID = &parsed
		}
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Attributes != nil {
		doc.Attributes = r.Attributes
	}

	if r.Lines != nil {
		doc.Lines = make([]sale_invoice.Line, 0, len(r.Lines))
		for _, line := range r.Lines {
			doc.AddLine(line)
		}
	}

	if r.DiscountPercent != nil {
		doc.SaleTotals.DiscountPercent = *r.DiscountPercent
	}
	if r.TaxPercent != nil {
		doc.SaleTotals.TaxPercent = *r.TaxPercent
	}
	doc.RecalcTotals(calc.FieldNone)

	doc.Version = r.Version
}

// --- Response DTOs ---

// SaleInvoiceResponse represents a sale invoice in API responses.
type SaleInvoiceResponse struct {
	DocumentResponse
	CustomerID *string `json:"customerId,omitempty"`

	calc.SaleTotals

	TotalQuantity decimal.Decimal     `json:"totalQuantity"`
	Lines         []sale_invoice.Line `json:"lines"`
}

// FromSaleInvoice converts domain entity to response DTO.
func FromSaleInvoice(doc *sale_invoice.SaleInvoice) *SaleInvoiceResponse {
	var customerID *string
	if doc.CustomerID != nil {
		s := doc.CustomerID.String()
		customerID = &s
	}
	return &SaleInvoiceResponse{
		DocumentResponse: FromDocument(doc.Document),
		CustomerID:       customerID,
		SaleTotals:       doc.SaleTotals,
		TotalQuantity:    doc.TotalQuantity,
		Lines:            doc.Lines,
	}
}

// SaleInvoiceListResponse represents a list of sale invoices.
type SaleInvoiceListResponse struct {
	Items      []*SaleInvoiceResponse `json:"items"`
	TotalCount int64                  `json:"totalCount"`
	Limit      int                    `json:"limit"`
	Offset     int                    `json:"offset"`
}
