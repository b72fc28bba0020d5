// Package purchase_return provides the PurchaseReturn document.
package purchase_return

import (
	"context"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
	"pharmapos/internal/domain/calc"
	"pharmapos/internal/domain/documents/docline"
	"pharmapos/internal/domain/posting"
)

// PurchaseReturn records stock sent back to a supplier. Lines price by the
// pack and the footer carries header-level discount and tax; posting
// produces stock expenses per product batch.
type PurchaseReturn struct {
	entity.Document

	// Supplier reference
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Supplier's reference for the original purchase, free-form
	OriginalInvoiceNumber string `db:"original_invoice_number" json:"originalInvoiceNumber,omitempty"`

	// Footer with header-level discount and tax, flattened into the
	// header row in storage
	calc.Totals

	// TotalQuantity is calculated from lines
	TotalQuantity decimal.Decimal `db:"total_quantity" json:"totalQuantity"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one purchase return line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	calc.LineItem
}

// NewPurchaseReturn creates a new purchase return document.
func NewPurchaseReturn(supplierID id.ID) *PurchaseReturn {
	return &PurchaseReturn{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a fully recalculated line and updates the footer.
func (p *PurchaseReturn) AddLine(item calc.LineItem) {
	line := Line{
		LineID:   id.New(),
		LineNo:   len(p.Lines) + 1,
		LineItem: calc.RecalcLine(calc.PurchaseReturnRules, item, calc.FieldNone),
	}
	p.Lines = append(p.Lines, line)
	p.recalcTotals(calc.FieldNone)
}

// RecalcLine reruns the line calculation after the user edited one field,
// then refreshes the footer. lineNo is 1-based.
func (p *PurchaseReturn) RecalcLine(lineNo int, edited calc.Field) error {
	if lineNo < 1 || lineNo > len(p.Lines) {
		return apperror.NewValidation("line number out of range").
			WithDetail("lineNo", lineNo)
	}
	p.Lines[lineNo-1].LineItem = calc.RecalcLine(calc.PurchaseReturnRules, p.Lines[lineNo-1].LineItem, edited)
	p.recalcTotals(calc.FieldNone)
	return nil
}

// RecalcTotals reruns the footer after the user edited a header discount or
// tax field.
func (p *PurchaseReturn) RecalcTotals(edited calc.Field) {
	p.recalcTotals(edited)
}

// RecalcAll reruns every line and the footer. Used after bulk line loads.
func (p *PurchaseReturn) RecalcAll() {
	for i := range p.Lines {
		p.Lines[i].LineNo = i + 1
		p.Lines[i].LineItem = calc.RecalcLine(calc.PurchaseReturnRules, p.Lines[i].LineItem, calc.FieldNone)
	}
	p.recalcTotals(calc.FieldNone)
}

func (p *PurchaseReturn) recalcTotals(edited calc.Field) {
	items := make([]calc.LineItem, len(p.Lines))
	qty := decimal.Zero
	for i, line := range p.Lines {
		items[i] = line.LineItem
		qty = qty.Add(line.Quantity)
	}
	p.TotalQuantity = qty
	p.Totals = calc.RecalcPurchaseReturnTotals(items, p.Totals, edited)
}

// Validate implements entity.Validatable.
func (p *PurchaseReturn) Validate(ctx context.Context) error {
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
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetPostedVersion, IsPosted, CanPost are inherited from entity.Document

// GetDocumentType returns the document type name.
func (p *PurchaseReturn) GetDocumentType() string {
	return "PurchaseReturn"
}

// GenerateMovements creates stock expenses for this document.
// Returned stock must be on hand; the posting engine checks availability.
func (p *PurchaseReturn) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
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
			entity.RecordTypeExpense,
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
var _ posting.Postable = (*PurchaseReturn)(nil)
