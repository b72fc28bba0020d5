package calc

// Rules parameterizes the line engine per document family.
// The three families share one shape and diverge only in field sets and
// rounding; the divergences live here instead of in three copied functions.
type Rules struct {
	// Bonus enables the pack/unit bonus pair (free supplier stock).
	Bonus bool

	// SalePrices enables the pack/unit sale price pair.
	SalePrices bool

	// Margin enables the sale-over-purchase margin output.
	Margin bool

	// AvgPrice enables the landed-unit-cost output.
	AvgPrice bool

	// PackSizeBackfill enables the late pack-size-change rule: when the
	// edited field is pack_size and exactly one side of a pack/unit pair is
	// zero, the zero side is filled in from the other.
	PackSizeBackfill bool

	// PackSubtotal bases the line subtotal on pack quantity times pack price
	// instead of total units times unit price.
	PackSubtotal bool

	// RoundSubtotal rounds the line subtotal to 2 decimal places.
	RoundSubtotal bool
}

// PurchaseInvoiceRules configures the purchase invoice line engine:
// full pack/unit shape with bonus, sale prices, margin and average cost.
var PurchaseInvoiceRules = Rules{
	Bonus:      true,
	SalePrices: true,
	Margin:     true,
	AvgPrice:   true,
}

// PurchaseReturnRules configures the purchase return line engine:
// quantity and purchase price pairs only, pack-based subtotal rounded to
// 2 decimals, with the pack-size backfill rule.
var PurchaseReturnRules = Rules{
	PackSizeBackfill: true,
	PackSubtotal:     true,
	RoundSubtotal:    true,
}
