package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/purchase_invoice"
)

// --- Request DTOs ---

// CreatePurchaseInvoiceRequest represents a request to create a purchase invoice.
// Lines come in as raw form values; derived fields are recomputed server-side.
type CreatePurchaseInvoiceRequest struct {
	Number                string            `json:"number,omitempty"`
	Date                  *time.Time        `json:"date,omitempty"`
	SupplierID            string            `json:"supplierId" binding:"required"`
	SupplierInvoiceNumber string            `json:"supplierInvoiceNumber,omitempty"`
	SupplierInvoiceDate   *time.Time        `json:"supplierInvoiceDate,omitempty"`
	StatedAmount          calc.Cell         `json:"statedAmount"`
	Comment               string            `json:"comment,omitempty"`
	Lines                 []calc.LineItem   `json:"lines" binding:"required,min=1"`
	Attributes            entity.Attributes `json:"attributes"`
	PostImmediately       bool              `json:"postImmediately,omitempty"`
}

// ToEntity converts request to domain entity.
// An unparseable supplier ID yields the nil ID, which validation rejects.
func (r *CreatePurchaseInvoiceRequest) ToEntity() *purchase_invoice.PurchaseInvoice {
	supplierID, _ := id.Parse(r.SupplierID)

	doc := purchase_invoice.NewPurchaseInvoice(supplierID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.SupplierInvoiceNumber = r.SupplierInvoiceNumber
	doc.SupplierInvoiceDate = r.SupplierInvoiceDate
	doc.StatedAmount = r.StatedAmount
	doc.Comment = r.Comment
	doc.Attributes = r.Attributes

	for _, line := range r.Lines {
		doc.AddLine(line)
	}

	return doc
}

// UpdatePurchaseInvoiceRequest represents a request to update a purchase invoice.
type UpdatePurchaseInvoiceRequest struct {
	Number                *string           `json:"number,omitempty"`
	Date                  *time.Time        `json:"date,omitempty"`
	SupplierID            *string           `json:"supplierId,omitempty"`
	SupplierInvoiceNumber *string           `json:"supplierInvoiceNumber,omitempty"`
	SupplierInvoiceDate   *time.Time        `json:"supplierInvoiceDate,omitempty"`
	StatedAmount          *calc.Cell        `json:"statedAmount,omitempty"`
	Comment               *string           `json:"comment,omitempty"`
	Lines                 []calc.LineItem   `json:"lines,omitempty"`
	Attributes            entity.Attributes `json:"attributes"`
	Version               int               `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePurchaseInvoiceRequest) ApplyTo(doc *purchase_invoice.PurchaseInvoice) {
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
	if r.SupplierInvoiceNumber != nil {
		doc.SupplierInvoiceNumber = *r.SupplierInvoiceNumber
	}
	if r.SupplierInvoiceDate != nil {
		doc.SupplierInvoiceDate = r.SupplierInvoiceDate
	}
	if r.StatedAmount != nil {
		doc.StatedAmount = *r.StatedAmount
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Attributes != nil {
		doc.Attributes = r.Attributes
	}

	// If lines are provided, rebuild the table part
	if r.Lines != nil {
		doc.Lines = make([]purchase_invoice.Line, 0, len(r.Lines))
		for _, line := range r.Lines {
			doc.AddLine(line)
		}
	}

	doc.Version = r.Version
}

// --- Response DTOs ---

// PurchaseInvoiceResponse represents a purchase invoice in API responses.
// Line fields keep their snake_case form-field names so the recalculation
// endpoints and document payloads share one wire shape.
type PurchaseInvoiceResponse struct {
	DocumentResponse
	SupplierID            string                  `json:"supplierId"`
	SupplierInvoiceNumber string                  `json:"supplierInvoiceNumber,omitempty"`
	SupplierInvoiceDate   *time.Time              `json:"supplierInvoiceDate,omitempty"`
	StatedAmount          calc.Cell               `json:"statedAmount"`
	TotalQuantity         decimal.Decimal         `json:"totalQuantity"`
	Total                 decimal.Decimal         `json:"total"`
	Lines                 []purchase_invoice.Line `json:"lines"`
}

// FromPurchaseInvoice converts domain entity to response DTO.
func FromPurchaseInvoice(doc *purchase_invoice.PurchaseInvoice) *PurchaseInvoiceResponse {
	return &PurchaseInvoiceResponse{
		DocumentResponse:      FromDocument(doc.Document),
		SupplierID:            doc.SupplierID.String(),
		SupplierInvoiceNumber: doc.SupplierInvoiceNumber,
		SupplierInvoiceDate:   doc.SupplierInvoiceDate,
		StatedAmount:          doc.StatedAmount,
		TotalQuantity:         doc.TotalQuantity,
		Total:                 doc.Total,
		Lines:                 doc.Lines,
	}
}

// PurchaseInvoiceListResponse represents a list of purchase invoices.
type PurchaseInvoiceListResponse struct {
	Items      []*PurchaseInvoiceResponse `json:"items"`
	TotalCount int64                      `json:"totalCount"`
	Limit      int                        `json:"limit"`
	Offset     int                        `json:"offset"`
}
