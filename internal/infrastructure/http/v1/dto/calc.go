package dto

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/domain/calc"
)

// Stateless recalculation endpoints. The form posts its current line set and
// the field the user just edited; the response carries the fully recomputed
// document. Line numbers are 1-based; lineNo 0 targets the footer.

// --- Purchase invoice family ---

// RecalcPurchaseInvoiceRequest carries the purchase invoice form state.
type RecalcPurchaseInvoiceRequest struct {
	Lines        []calc.LineItem `json:"lines" binding:"required"`
	LineNo       int             `json:"lineNo"`
	ChangedField calc.Field      `json:"changedField"`
}

// RecalcPurchaseInvoiceResponse is the recomputed form state.
type RecalcPurchaseInvoiceResponse struct {
	Lines         []calc.LineItem `json:"lines"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	Total         decimal.Decimal `json:"total"`
}

// Recalc reruns the line pass and sums the footer.
func (r *RecalcPurchaseInvoiceRequest) Recalc() *RecalcPurchaseInvoiceResponse {
	lines := recalcLines(calc.PurchaseInvoiceRules, r.Lines, r.LineNo, r.ChangedField)

	qty := decimal.Zero
	total := decimal.Zero
	for _, line := range lines {
		qty = qty.Add(line.Quantity)
		total = total.Add(line.SubTotal)
	}

	return &RecalcPurchaseInvoiceResponse{
		Lines:         lines,
		TotalQuantity: qty,
		Total:         total,
	}
}

// RecalcPurchaseReturnRequest carries the purchase return form state.
type RecalcPurchaseReturnRequest struct {
	Lines        []calc.LineItem `json:"lines" binding:"required"`
	Totals       calc.Totals     `json:"totals"`
	LineNo       int             `json:"lineNo"`
	ChangedField calc.Field      `json:"changedField"`
}

// RecalcPurchaseReturnResponse is the recomputed form state.
type RecalcPurchaseReturnResponse struct {
	Lines         []calc.LineItem `json:"lines"`
	Totals        calc.Totals     `json:"totals"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// Recalc reruns the line pass, then the footer pass. A footer edit leaves
// the lines on a plain recompute and routes the changed field to the footer.
func (r *RecalcPurchaseReturnRequest) Recalc() *RecalcPurchaseReturnResponse {
	lineEdit, footerEdit := splitEdit(r.LineNo, r.ChangedField)

	lines := recalcLines(calc.PurchaseReturnRules, r.Lines, r.LineNo, lineEdit)

	qty := decimal.Zero
	for _, line := range lines {
		qty = qty.Add(line.Quantity)
	}

	return &RecalcPurchaseReturnResponse{
		Lines:         lines,
		Totals:        calc.RecalcPurchaseReturnTotals(lines, r.Totals, footerEdit),
		TotalQuantity: qty,
	}
}

// --- Sale family ---

// RecalcSaleRequest carries the sale form state, shared by sale invoices
// and sale returns.
type RecalcSaleRequest struct {
	Lines        []calc.SaleLine `json:"lines" binding:"required"`
	Totals       calc.SaleTotals `json:"totals"`
	LineNo       int             `json:"lineNo"`
	ChangedField calc.Field      `json:"changedField"`
}

// RecalcSaleResponse is the recomputed form state.
type RecalcSaleResponse struct {
	Lines         []calc.SaleLine `json:"lines"`
	Totals        calc.SaleTotals `json:"totals"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// Recalc reruns the line pass, then the footer pass.
func (r *RecalcSaleRequest) Recalc() *RecalcSaleResponse {
	lineEdit, footerEdit := splitEdit(r.LineNo, r.ChangedField)

	lines := make([]calc.SaleLine, len(r.Lines))
	qty := decimal.Zero
	for i, line := range r.Lines {
		edited := calc.FieldNone
		if i == r.LineNo-1 {
			edited = lineEdit
		}
		lines[i] = calc.RecalcSaleLine(line, edited)
		qty = qty.Add(lines[i].Quantity.Decimal())
	}

	return &RecalcSaleResponse{
		Lines:         lines,
		Totals:        calc.RecalcSaleTotals(lines, r.Totals, footerEdit),
		TotalQuantity: qty,
	}
}

// recalcLines recomputes every line, passing the edited field only to the
// targeted line.
func recalcLines(rules calc.Rules, items []calc.LineItem, lineNo int, edited calc.Field) []calc.LineItem {
	lines := make([]calc.LineItem, len(items))
	for i, line := range items {
		field := calc.FieldNone
		if i == lineNo-1 {
			field = edited
		}
		lines[i] = calc.RecalcLine(rules, line, field)
	}
	return lines
}

// splitEdit routes the changed field either to a line (lineNo > 0) or to
// the footer.
func splitEdit(lineNo int, changed calc.Field) (line, footer calc.Field) {
	if lineNo > 0 {
		return changed, calc.FieldNone
	}
	return calc.FieldNone, changed
}
