package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/sale_return"
)

// --- Request DTOs ---

// CreateSaleReturnRequest represents a request to create a sale return.
type CreateSaleReturnRequest struct {
	Number             string            `json:"number,omitempty"`
	Date               *time.Time        `json:"date,omitempty"`
	CustomerID         *string           `json:"customerId,omitempty"`
	OriginalSaleNumber string            `json:"originalSaleNumber" binding:"required"`
	DiscountPercent    calc.Cell         `json:"discount_percentage"`
	TaxPercent         calc.Cell         `json:"tax_percentage"`
	Comment            string            `json:"comment,omitempty"`
	Lines              []calc.SaleLine   `json:"lines" binding:"required,min=1"`
	Attributes         entity.Attributes `json:"attributes"`
	PostImmediately    bool              `json:"postImmediately,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateSaleReturnRequest) ToEntity() *sale_return.SaleReturn {
	var customerID *id.ID
	if r.CustomerID != nil {
		if parsed, err := id.Parse(*r.CustomerID); err == nil {
			customerID = &parsed
		}
	}

	doc := sale_return.NewSaleReturn(customerID, r.OriginalSaleNumber)
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

// UpdateSaleReturnRequest represents a request to update a sale return.
type UpdateSaleReturnRequest struct {
	Number             *string           `json:"number,omitempty"`
	Date               *time.Time        `json:"date,omitempty"`
	CustomerID         *string           `json:"customerId,omitempty"`
	OriginalSaleNumber *string           `json:"originalSaleNumber,omitempty"`
	DiscountPercent    *calc.Cell        `json:"discount_percentage,omitempty"`
	TaxPercent         *calc.Cell        `json:"tax_percentage,omitempty"`
	Comment            *string           `json:"comment,omitempty"`
	Lines              []calc.SaleLine   `json:"lines,omitempty"`
	Attributes         entity.Attributes `json:"attributes"`
	Version            int               `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateSaleReturnRequest) ApplyTo(doc *sale_return.SaleReturn) {
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
	if r.OriginalSaleNumber != nil {
		doc.OriginalSaleNumber = *r.OriginalSaleNumber
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Attributes != nil {
		doc.Attributes = r.Attributes
	}

	if r.Lines != nil {
		doc.Lines = make([]sale_return.Line, 0, len(r.Lines))
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

// SaleReturnResponse represents a sale return in API responses.
type SaleReturnResponse struct {
	DocumentResponse
	CustomerID         *string `json:"customerId,omitempty"`
	OriginalSaleNumber string  `json:"originalSaleNumber"`

	calc.SaleTotals

	TotalQuantity decimal.Decimal    `json:"totalQuantity"`
	Lines         []sale_return.Line `json:"lines"`
}

// FromSaleReturn converts domain entity to response DTO.
func FromSaleReturn(doc *sale_return.SaleReturn) *SaleReturnResponse {
	var customerID *string
	if doc.CustomerID != nil {
		s := doc.CustomerID.String()
		customerID = &s
	}
	return &SaleReturnResponse{
		DocumentResponse:   FromDocument(doc.Document),
		CustomerID:         customerID,
		OriginalSaleNumber: doc.OriginalSaleNumber,
		SaleTotals:         doc.SaleTotals,
		TotalQuantity:      doc.TotalQuantity,
		Lines:              doc.Lines,
	}
}

// SaleReturnListResponse represents a list of sale returns.
type SaleReturnListResponse struct {
	Items      []*SaleReturnResponse `json:"items"`
	TotalCount int64                 `json:"totalCount"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}
