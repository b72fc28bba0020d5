// Package sale_invoice provides the SaleInvoice document, the POS sale.
package sale_invoice

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

// SaleInvoice records a counter sale. Lines are unit-only; the footer
// carries header discount and tax on top of per-line discounts. Posting
// produces stock expenses per product batch.
type SaleInvoice struct {
	entity.Document

	// CustomerID is nil for walk-in sales
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// Footer, flattened into the header row in storage
	calc.SaleTotals

	// TotalQuantity is calculated from lines
	TotalQuantity decimal.Decimal `db:"total_quantity" json:"totalQuantity"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one sale invoice line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	calc.SaleLine
}

// NewSaleInvoice creates a new sale invoice. customerID may be nil for a
// walk-in sale.
func NewSaleInvoice(customerID *id.ID) *SaleInvoice {
	return &SaleInvoice{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a fully recalculated line and updates the footer.
func (s *SaleInvoice) AddLine(item calc.SaleLine) {
	line := Line{
		LineID:   id.New(),
		LineNo:   len(s.Lines) + 1,
		SaleLine: calc.RecalcSaleLine(item, calc.FieldNone),
	}
	s.Lines = append(s.Lines, line)
	s.recalcTotals(calc.FieldNone)
}

// RecalcLine reruns the line calculation after the user edited one field,
// then refreshes the footer. lineNo is 1-based.
func (s *SaleInvoice) RecalcLine(lineNo int, edited calc.Field) error {
	if lineNo < 1 || lineNo > len(s.Lines) {
		return apperror.NewValidation("line number out of range").
			WithDetail("lineNo", lineNo)
	}
	s.Lines[lineNo-1].SaleLine = calc.RecalcSaleLine(s.Lines[lineNo-1].SaleLine, edited)
	s.recalcTotals(calc.FieldNone)
	return nil
}

// RecalcTotals reruns the footer after the user edited a header discount or
// tax field.
func (s *SaleInvoice) RecalcTotals(edited calc.Field) {
	s.recalcTotals(edited)
}

// RecalcAll reruns every line and the footer. Used after bulk line loads.
func (s *SaleInvoice) RecalcAll() {
	for i := range s.Lines {
		s.Lines[i].LineNo = i + 1
		s.Lines[i].SaleLine = calc.RecalcSaleLine(s.Lines[i].SaleLine, calc.FieldNone)
	}
	s.recalcTotals(calc.FieldNone)
}

func (s *SaleInvoice) recalcTotals(edited calc.Field) {
	items := make([]calc.SaleLine, len(s.Lines))
	qty := decimal.Zero
	for i, line := range s.Lines {
		items[i] = line.SaleLine
		qty = qty.Add(line.Quantity.Decimal())
	}
	s.TotalQuantity = qty
	s.SaleTotals = calc.RecalcSaleTotals(items, s.SaleTotals, edited)
}

// Validate implements entity.Validatable.
func (s *SaleInvoice) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[string]bool, len(s.Lines))
	for _, line := range s.Lines {
		lineNo := line.LineNo

		if _, err := docline.ParseProductID(line.ProductID, lineNo); err != nil {
			return err
		}
		if _, err := docline.ParseExpiry(line.Expiry, lineNo); err != nil {
			return err
		}

		if !line.Quantity.Decimal().IsPositive() {
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
func (s *SaleInvoice) GetDocumentType() string {
	return "SaleInvoice"
}

// GenerateMovements creates stock expenses for this document.
// Sold stock must be on hand; the posting engine checks availability.
func (s *SaleInvoice) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := s.PostedVersion + 1

	for _, line := range s.Lines {
		productID, err := docline.ParseProductID(line.ProductID, line.LineNo)
		if err != nil {
			return nil, err
		}
		expiry, err := docline.ParseExpiry(line.Expiry, line.LineNo)
		if err != nil {
			return nil, err
		}

		movements.AddStock(entity.NewStockMovement(
			s.ID,
			s.GetDocumentType(),
			newVersion,
			s.Date,
			entity.RecordTypeExpense,
			productID,
			line.Batch,
			expiry,
			types.NewQuantityFromDecimal(line.Quantity.Decimal()),
			line.SubTotal,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*SaleInvoice)(nil)
