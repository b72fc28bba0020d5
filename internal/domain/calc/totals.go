package calc

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/core/types"
)

// Totals is the purchase return document footer.
// Zero values are emitted as numeric 0 in this family.
type Totals struct {
	GrossTotal      decimal.Decimal `db:"gross_total" json:"gross_total"`
	DiscountPercent Cell            `db:"discount_percentage" json:"discount_percentage"`
	DiscountAmount  Cell            `db:"discount_amount" json:"discount_amount"`
	TaxPercent      Cell            `db:"tax_percentage" json:"tax_percentage"`
	TaxAmount       Cell            `db:"tax_amount" json:"tax_amount"`
	Total           decimal.Decimal `db:"total" json:"total"`
}

// RecalcPurchaseReturnTotals recomputes the purchase return footer from the
// current line set and header inputs.
//
// Exactly one side of the discount and tax percentage/amount pairs is
// derived per call, chosen by edited. The discount amount is clamped to the
// gross total; clamping is the one case where the edited field itself is
// rewritten. Tax applies to the post-discount base and is floored at zero.
func RecalcPurchaseReturnTotals(lines []LineItem, cur Totals, edited Field) Totals {
	out := cur

	gross := decimal.Zero
	for _, ln := range lines {
		gross = gross.Add(ln.SubTotal)
	}
	out.GrossTotal = types.Round2(gross)

	pct := cur.DiscountPercent.Decimal()
	amt := cur.DiscountAmount.Decimal()
	if edited == FieldDiscountAmount {
		if gross.IsZero() {
			pct = decimal.Zero
		} else {
			pct = amt.Div(gross).Mul(hundred)
		}
		out.DiscountPercent = Numeric(types.Round2(pct))
	} else {
		amt = gross.Mul(pct).Div(hundred)
		out.DiscountAmount = Numeric(types.Round2(amt))
	}

	if amt.GreaterThan(gross) {
		amt = gross
		if gross.IsPositive() {
			pct = hundred
		} else {
			pct = decimal.Zero
		}
		out.DiscountAmount = Numeric(types.Round2(amt))
		out.DiscountPercent = Numeric(pct)
	}

	base := gross.Sub(amt)

	taxPct := cur.TaxPercent.Decimal()
	taxAmt := cur.TaxAmount.Decimal()
	if edited == FieldTaxAmount {
		if base.IsZero() {
			taxPct = decimal.Zero
		} else {
			taxPct = taxAmt.Div(base).Mul(hundred)
		}
		out.TaxPercent = Numeric(types.Round2(taxPct))
	} else {
		taxAmt = base.Mul(taxPct).Div(hundred)
		out.TaxAmount = Numeric(types.Round2(taxAmt))
	}

	if taxAmt.IsNegative() {
		taxAmt = decimal.Zero
		out.TaxAmount = Numeric(decimal.Zero)
	}

	out.Total = types.Round2(base.Add(taxAmt))
	return out
}

// SaleTotals is the sale invoice document footer.
// Percentage/amount fields are emitted as blank when zero in this family;
// "no value" renders as an empty field rather than "0".
type SaleTotals struct {
	GrossAmount     decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	ItemDiscount    decimal.Decimal `db:"item_discount" json:"item_discount"`
	DiscountPercent Cell            `db:"discount_percentage" json:"discount_percentage"`
	DiscountAmount  Cell            `db:"discount_amount" json:"discount_amount"`
	TaxPercent      Cell            `db:"tax_percentage" json:"tax_percentage"`
	TaxAmount       Cell            `db:"tax_amount" json:"tax_amount"`
	Total           decimal.Decimal `db:"total" json:"total"`
}

// RecalcSaleTotals recomputes the sale invoice footer.
//
// The gross amount is quantity times price summed over lines; line-level
// discounts accumulate separately into ItemDiscount and reduce the tax base
// together with the header discount. The header discount derives against
// the gross amount and is not clamped.
func RecalcSaleTotals(lines []SaleLine, cur SaleTotals, edited Field) SaleTotals {
	out := cur

	gross := decimal.Zero
	itemDiscount := decimal.Zero
	for _, ln := range lines {
		gross = gross.Add(ln.Gross())
		itemDiscount = itemDiscount.Add(ln.ItemDiscountAmount)
	}
	out.GrossAmount = types.Round2(gross)
	out.ItemDiscount = types.Round2(itemDiscount)

	pct := cur.DiscountPercent.Decimal()
	amt := cur.DiscountAmount.Decimal()
	if edited == FieldDiscountAmount {
		if gross.IsZero() {
			pct = decimal.Zero
		} else {
			pct = amt.Div(gross).Mul(hundred)
		}
		out.DiscountPercent = blankWhenZero(pct)
	} else {
		amt = gross.Mul(pct).Div(hundred)
		out.DiscountAmount = blankWhenZero(amt)
	}

	base := gross.Sub(itemDiscount).Sub(amt)

	taxPct := cur.TaxPercent.Decimal()
	taxAmt := cur.TaxAmount.Decimal()
	if edited == FieldTaxAmount {
		if base.IsZero() {
			taxPct = decimal.Zero
		} else {
			taxPct = taxAmt.Div(base).Mul(hundred)
		}
		out.TaxPercent = blankWhenZero(taxPct)
	} else {
		taxAmt = base.Mul(taxPct).Div(hundred)
		out.TaxAmount = blankWhenZero(taxAmt)
	}

	out.Total = types.Round2(base.Add(taxAmt))
	return out
}

// blankWhenZero renders a derived value as blank when it is zero, numeric
// (2dp) otherwise.
func blankWhenZero(d decimal.Decimal) Cell {
	if d.IsZero() {
		return Blank()
	}
	return Numeric(types.Round2(d))
}
