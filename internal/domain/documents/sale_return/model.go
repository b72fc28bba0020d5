// Package sale_return provides the SaleReturn document, a customer return
// against an earlier sale.
package sale_return

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

// SaleReturn records goods taken back from a customer. Lines and footer
// follow the sale family; posting produces stock receipts so the returned
// batches become sellable again.
type SaleReturn struct {
	entity.Document

	// CustomerID is nil when the original sale was walk-in
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// OriginalSaleNumber references the sale invoice being returned against
	OriginalSaleNumber string `db:"original_sale_number" json:"originalSaleNumber"`

	// Footer, flattened into the header row in storage
	calc.SaleTotals

	// TotalQuantity is calculated from lines
	TotalQuantity decimal.Decimal `db:"total_quantity" json:"totalQuantity"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one sale return line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	calc.SaleLine
}

// NewSaleReturn creates a new sale return referencing the original sale.
func NewSaleReturn(customerID *id.ID, originalSaleNumber string) *SaleReturn {
	return &SaleReturn{
		Document:           entity.NewDocument(),
		CustomerID:         customerID,
		OriginalSaleNumber: originalSaleNumber,
		Lines:              make([]Line, 0),
	}
}

// AddLine appends a fully recalculated line and updates the footer.
func (s *SaleReturn) AddLine(item calc.SaleLine) {
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
func (s *SaleReturn) RecalcLine(lineNo int, edited calc.Field) error {
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
func (s *SaleReturn) RecalcTotals(edited calc.Field) {
	s.recalcTotals(edited)
}

// RecalcAll reruns every line and the footer. Used after bulk line loads.
func (s *SaleReturn) RecalcAll() {
	for i := range s.Lines {
		s.Lines[i].LineNo = i + 1
		s.Lines[i].SaleLine = calc.RecalcSaleLine(s.Lines[i].SaleLine, calc.FieldNone)
	}
	s.recalcTotals(calc.FieldNone)
}

func (s *SaleReturn) recalcTotals(edited calc.Field) {
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
func (s *SaleReturn) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if s.OriginalSaleNumber == "" {
		return apperror.NewValidation("original sale number is required").
			WithDetail("field", "originalSaleNumber")
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
func (s *SaleReturn) GetDocumentType() string {
	return "SaleReturn"
}

// GenerateMovements creates stock receipts for this document.
func (s *SaleReturn) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
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
			entity.RecordTypeReceipt,
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
var _ posting.Postable = (*SaleReturn)(nil)
