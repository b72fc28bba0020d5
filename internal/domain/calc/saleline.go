package calc

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/core/types"
)

// SaleLine is one sale-side document line (sale invoice or return).
// Sale lines have no pack/unit duality; they operate purely in units.
type SaleLine struct {
	// Identifying fields
	ProductID string `db:"product_id" json:"product_id"`
	Batch     string `db:"batch" json:"batch"`
	Expiry    string `db:"expiry" json:"expiry"`

	// Input fields
	Quantity            Cell `db:"quantity" json:"quantity"`
	Price               Cell `db:"price" json:"price"`
	ItemDiscountPercent Cell `db:"item_discount_percentage" json:"item_discount_percentage"`

	// Derived fields
	ItemDiscountAmount decimal.Decimal `db:"item_discount_amount" json:"item_discount_amount"`
	SubTotal           decimal.Decimal `db:"sub_total" json:"sub_total"`
}

// Gross returns quantity times price before any discount.
func (l SaleLine) Gross() decimal.Decimal {
	return l.Quantity.Decimal().Mul(l.Price.Decimal())
}

// RecalcSaleLine recomputes the derived fields of a sale line.
// The edited field is never rewritten.
func RecalcSaleLine(line SaleLine, edited Field) SaleLine {
	out := line
	gross := line.Gross()
	out.ItemDiscountAmount = gross.Mul(line.ItemDiscountPercent.Decimal()).Div(hundred)
	out.SubTotal = types.Round2(gross.Sub(out.ItemDiscountAmount))
	return out
}

// ApplySaleDefaults folds the catalog unit sale price into a sale line and
// reruns a full recalculation.
func ApplySaleDefaults(line SaleLine, unitSalePrice decimal.Decimal) SaleLine {
	line.Price = Numeric(unitSalePrice)
	return RecalcSaleLine(line, FieldNone)
}
