// Package purchase_invoice provides the PurchaseInvoice document.
package purchase_invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/docline"
	"pharmapos/internal/domain/posting"
)

// amountTolerance is the maximum allowed difference between the supplier's
// stated invoice amount and the computed total.
var amountTolerance = decimal.NewFromInt(1)

// PurchaseInvoice records incoming stock purchased from a supplier.
// Lines carry the pack/unit duality and bonus units; posting produces stock
// receipts per product batch.
type PurchaseInvoice struct {
	entity.Document

	// Supplier reference
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Supplier's document reference
	SupplierInvoiceNumber string     `db:"supplier_invoice_number" json:"supplierInvoiceNumber,omitempty"`
	SupplierInvoiceDate   *time.Time `db:"supplier_invoice_date" json:"supplierInvoiceDate,omitempty"`

	// StatedAmount is the total printed on the supplier's invoice. Blank
	// skips the amount cross-check on save.
	StatedAmount calc.Cell `db:"stated_amount" json:"statedAmount"`

	// Totals (calculated from lines)
	TotalQuantity decimal.Decimal `db:"total_quantity" json:"totalQuantity"`
	Total         decimal.Decimal `db:"total" json:"total"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one purchase invoice line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	calc.LineItem
}

// NewPurchaseInvoice creates a new purchase invoice document.
func NewPurchaseInvoice(supplierID id.ID) *PurchaseInvoice {
	return &PurchaseInvoice{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a fully recalculated line and updates totals.
func (p *PurchaseInvoice) AddLine(item calc.LineItem) {
	line := Line{
		LineID:   id.New(),
		LineNo:   len(p.Lines) + 1,
		LineItem: calc.RecalcLine(calc.PurchaseInvoiceRules, item, calc.FieldNone),
	}
	p.Lines = append(p.Lines, line)
	p.recalculateTotals()
}

// RecalcLine reruns the line calculation after the user edited one field,
// then updates totals. lineNo is 1-based.
func (p *PurchaseInvoice) RecalcLine(lineNo int, edited calc.Field) error {
	if lineNo < 1 || lineNo > len(p.Lines) {
		return apperror.NewValidation("line number out of range").
			WithDetail("lineNo", lineNo)
	}
	p.Lines[lineNo-1].LineItem = calc.RecalcLine(calc.PurchaseInvoiceRules, p.Lines[lineNo-1].LineItem, edited)
	p.recalculateTotals()
	return nil
}

// RecalcAll reruns every line and the totals. Used after bulk line loads.
func (p *PurchaseInvoice) RecalcAll() {
	for i := range p.Lines {
		p.Lines[i].LineNo = i + 1
		p.Lines[i].LineItem = calc.RecalcLine(calc.PurchaseInvoiceRules, p.Lines[i].LineItem, calc.FieldNone)
	}
	p.recalculateTotals()
}

func (p *PurchaseInvoice) recalculateTotals() {
	qty := decimal.Zero
	total := decimal.Zero
	for _, line := range p.Lines {
		qty = qty.Add(line.Quantity)
		total = total.Add(line.SubTotal)
	}
	p.TotalQuantity = qty
	p.Total = types.Round2(total)
}

// Validate implements entity.Validatable.
//
// Beyond structural checks this enforces the save-time business rules: no
// duplicate product+batch pair, no line selling below cost, and the stated
// supplier amount must agree with the computed total within the tolerance.
func (p *PurchaseInvoice) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[string]bool, len(p.Lines))
	for _, line := range p.Lines {
		lineNo := line.LineNo

		if _, err := docline.ParseProductID(line.ProductID, lineNo); err != nil {
			return err
		}
		if _, err := docline.ParseExpiry(line.Expiry, lineNo); err != nil {
			return err
		}

		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}

		key := line.ProductID + "|" + line.Batch
		if seen[key] {
			return apperror.NewDuplicateBatch(line.ProductID, line.Batch)
		}
		seen[key] = true

		if !line.Margin.IsBlank() && line.Margin.Decimal().IsNegative() {
			return apperror.NewNegativeMargin(line.ProductID, lineNo)
		}
	}

	if !p.StatedAmount.IsBlank() {
		stated := p.StatedAmount.Decimal()
		if stated.Sub(p.Total).Abs().GreaterThan(amountTolerance) {
			return apperror.NewAmountMismatch(stated.StringFixed(2), p.Total.StringFixed(2))
		}
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetPostedVersion, IsPosted, CanPost are inherited from entity.Document

// GetDocumentType returns the document type name.
func (p *PurchaseInvoice) GetDocumentType() string {
	return "PurchaseInvoice"
}

// GenerateMovements creates stock receipts for this document.
// Bonus units are already folded into each line's quantity, so free stock
// lands in the register at zero incremental amount.
func (p *PurchaseInvoice) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := p.PostedVersion + 1

	for _, line := range p.Lines {
		productID, err := docline.ParseProductID(line.ProductID, line.LineNo)
		if err != nil {
			return nil, err
		}
		expiry, err := docline.ParseExpiry(line.Expiry, line.LineNo)
		if err != nil {
			return nil, err
		}

		movements.AddStock(entity.NewStockMovement(
			p.ID,
			p.GetDocumentType(),
			newVersion,
			p.Date,
			entity.RecordTypeReceipt,
			productID,
			line.Batch,
			expiry,
			types.NewQuantityFromDecimal(line.Quantity),
			line.SubTotal,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*PurchaseInvoice)(nil)
