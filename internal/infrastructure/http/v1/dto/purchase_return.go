package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/purchase_return"
)

// --- Request DTOs ---

// CreatePurchaseReturnRequest represents a request to create a purchase return.
// Footer amounts derive from the percentages on save; an amount edited in the
// form arrives with its percentage already synced by the calc endpoint.
type CreatePurchaseReturnRequest struct {
	Number                string            `json:"number,omitempty"`
	Date                  *time.Time        `json:"date,omitempty"`
	SupplierID            string            `json:"supplierId" binding:"required"`
	OriginalInvoiceNumber string            `json:"originalInvoiceNumber,omitempty"`
	DiscountPercent       calc.Cell         `json:"discount_percentage"`
	TaxPercent            calc.Cell         `json:"tax_percentage"`
	Comment               string            `json:"comment,omitempty"`
	Lines                 []calc.LineItem   `json:"lines" binding:"required,min=1"`
	Attributes            entity.Attributes `json:"attributes"`
	PostImmediately       bool              `json:"postImmediately,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreatePurchaseReturnRequest) ToEntity() *purchase_return.PurchaseReturn {
	supplierID, _ := id.Parse(r.SupplierID)

	doc := purchase_return.NewPurchaseReturn(supplierID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.OriginalInvoiceNumber = r.OriginalInvoiceNumber
	doc.Comment = r.Comment
	doc.Attributes = r.Attributes

	for _, line := range r.Lines {
		doc.AddLine(line)
	}

	doc.Totals.DiscountPercent = r.DiscountPercent
	doc.Totals.TaxPercent = r.TaxPercent
	doc.RecalcTotals(calc.FieldNone)

	return doc
}

// UpdatePurchaseReturnRequest represents a request to update a purchase return.
type UpdatePurchaseReturnRequest struct {
	Number                *string           `json:"number,omitempty"`
	Date                  *time.Time        `json:"date,omitempty"`
	SupplierID            *string           `json:"supplierId,omitempty"`
	OriginalInvoiceNumber *string           `json:"originalInvoiceNumber,omitempty"`
	DiscountPercent       *calc.Cell        `json:"discount_percentage,omitempty"`
	TaxPercent            *calc.Cell        `json:"tax_percentage,omitempty"`
	Comment               *string           `json:"comment,omitempty"`
	Lines                 []calc.LineItem   `json:"lines,omitempty"`
	Attributes            entity.Attributes `json:"attributes"`
	Version               int               `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePurchaseReturnRequest) ApplyTo(doc *purchase_return.PurchaseReturn) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.SupplierID != nil {
		supplierID, _ := id.Parse(*r.SupplierID)
		doc.SupplierID = supplierID
	}
	if r.OriginalInvoiceNumber != nil {
		doc.OriginalInvoiceNumber = *r.OriginalInvoiceNumber
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Attributes != nil {
		doc.Attributes = r.Attributes
	}

	if r.Lines != nil {
		doc.Lines = make([]purchase_return.Line, 0, len(r.Lines))
		for _, line := range r.Lines {
			doc.AddLine(line)
		}
	}

	if r.DiscountPercent != nil {
		doc.Totals.DiscountPercent = *r.DiscountPercent
	}
	if r.TaxPercent != nil {
		doc.Totals.TaxPercent = *r.TaxPercent
	}
	doc.RecalcTotals(calc.FieldNone)

	doc.Version = r.Version
}

// --- Response DTOs ---

// PurchaseReturnResponse represents a purchase return in API responses.
// The embedded footer serializes under its snake_case form-field names.
type PurchaseReturnResponse struct {
	DocumentResponse
	SupplierID            string `json:"supplierId"`
	OriginalInvoiceNumber string `json:"originalInvoiceNumber,omitempty"`

	calc.Totals

	TotalQuantity decimal.Decimal       `json:"totalQuantity"`
	Lines         []purchase_return.Line `json:"lines"`
}

// FromPurchaseReturn converts domain entity to response DTO.
func FromPurchaseReturn(doc *purchase_return.PurchaseReturn) *PurchaseReturnResponse {
	return &PurchaseReturnResponse{
		DocumentResponse:      FromDocument(doc.Document),
		SupplierID:            doc.SupplierID.String(),
		OriginalInvoiceNumber: doc.OriginalInvoiceNumber,
		Totals:                doc.Totals,
		TotalQuantity:         doc.TotalQuantity,
		Lines:                 doc.Lines,
	}
}

// PurchaseReturnListResponse represents a list of purchase returns.
type PurchaseReturnListResponse struct {
	Items      []*PurchaseReturnResponse `json:"items"`
	TotalCount int64                     `json:"totalCount"`
	Limit      int                       `json:"limit"`
	Offset     int                       `json:"offset"`
}
