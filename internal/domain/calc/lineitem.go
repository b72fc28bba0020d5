package calc

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/core/types"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one purchase-side document line (invoice or return).
//
// Identifying fields are opaque to the engine. Input fields are Cells so
// blank survives a round trip and in-progress typing is never rewritten;
// derived fields are plain decimals recomputed on every call.
type LineItem struct {
	// Identifying fields
	ProductID string `db:"product_id" json:"product_id"`
	Batch     string `db:"batch" json:"batch"`
	Expiry    string `db:"expiry" json:"expiry"`

	// Quantity fields
	PackSize     Cell `db:"pack_size" json:"pack_size"`
	PackQuantity Cell `db:"pack_quantity" json:"pack_quantity"`
	UnitQuantity Cell `db:"unit_quantity" json:"unit_quantity"`

	// Price fields
	PackPurchasePrice Cell `db:"pack_purchase_price" json:"pack_purchase_price"`
	UnitPurchasePrice Cell `db:"unit_purchase_price" json:"unit_purchase_price"`
	PackSalePrice     Cell `db:"pack_sale_price" json:"pack_sale_price"`
	UnitSalePrice     Cell `db:"unit_sale_price" json:"unit_sale_price"`

	// Bonus fields (purchase invoice only)
	PackBonus Cell `db:"pack_bonus" json:"pack_bonus"`
	UnitBonus Cell `db:"unit_bonus" json:"unit_bonus"`

	// Discount
	ItemDiscountPercent Cell `db:"item_discount_percentage" json:"item_discount_percentage"`

	// Derived fields
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	SubTotal decimal.Decimal `db:"sub_total" json:"sub_total"`
	AvgPrice decimal.Decimal `db:"avg_price" json:"avg_price"`
	Margin   Cell            `db:"margin" json:"margin"`
}

// RecalcLine recomputes all derived fields of a purchase-side line.
//
// edited names the field the user just changed; the pack/unit sync rules
// fire only for that field, so exactly one side of each pair is the source
// of truth per call. The edited field itself is never rewritten, which
// keeps raw in-progress input intact. FieldNone (product selection, bulk
// load) recomputes the derived fields without any pair sync.
func RecalcLine(r Rules, line LineItem, edited Field) LineItem {
	out := line
	size := line.PackSize.Decimal()

	if size.IsPositive() {
		switch edited {
		case FieldPackQuantity:
			out.UnitQuantity = Numeric(line.PackQuantity.Decimal().Mul(size))
		case FieldUnitQuantity:
			out.PackQuantity = Numeric(line.UnitQuantity.Decimal().Div(size))
		case FieldPackPurchasePrice:
			out.UnitPurchasePrice = Numeric(line.PackPurchasePrice.Decimal().Div(size))
		case FieldUnitPurchasePrice:
			out.PackPurchasePrice = Numeric(line.UnitPurchasePrice.Decimal().Mul(size))
		}

		if r.SalePrices {
			switch edited {
			case FieldPackSalePrice:
				out.UnitSalePrice = Numeric(line.PackSalePrice.Decimal().Div(size))
			case FieldUnitSalePrice:
				out.PackSalePrice = Numeric(line.UnitSalePrice.Decimal().Mul(size))
			}
		}

		// Bonus pairs sync in the opposite direction to quantity: the pack
		// count is the small hand-entered number, units the derived one.
		if r.Bonus {
			switch edited {
			case FieldPackBonus:
				out.UnitBonus = Numeric(line.PackBonus.Decimal().Mul(size))
			case FieldUnitBonus:
				out.PackBonus = Numeric(line.UnitBonus.Decimal().Div(size))
			}
		}

		// A late pack-size change must not zero out data the user already
		// entered on one side of a pair.
		if r.PackSizeBackfill && edited == FieldPackSize {
			out.PackQuantity, out.UnitQuantity = backfillQuantityPair(out.PackQuantity, out.UnitQuantity, size)
			out.PackPurchasePrice, out.UnitPurchasePrice = backfillPricePair(out.PackPurchasePrice, out.UnitPurchasePrice, size)
		}
	}

	packQty := out.PackQuantity.Decimal()
	unitQty := out.UnitQuantity.Decimal()
	unitPurchase := out.UnitPurchasePrice.Decimal()
	discountPct := out.ItemDiscountPercent.Decimal()

	// Bonus units are free supplier stock and count toward quantity.
	totalUnits := packQty.Mul(size).Add(unitQty)
	if r.Bonus {
		totalUnits = totalUnits.Add(out.UnitBonus.Decimal())
	}
	out.Quantity = totalUnits

	var gross decimal.Decimal
	if r.PackSubtotal {
		gross = packQty.Mul(out.PackPurchasePrice.Decimal())
	} else {
		gross = totalUnits.Mul(unitPurchase)
	}
	discount := gross.Mul(discountPct).Div(hundred)
	net := gross.Sub(discount)
	if r.RoundSubtotal {
		net = types.Round2(net)
	}
	out.SubTotal = net

	if r.AvgPrice {
		// True landed unit cost including bonus dilution.
		if totalUnits.IsPositive() {
			out.AvgPrice = net.Div(totalUnits)
		} else {
			out.AvgPrice = decimal.Zero
		}
	}

	if r.Margin {
		sale := out.UnitSalePrice.Decimal()
		if sale.IsPositive() && unitPurchase.IsPositive() {
			out.Margin = NumericFixed(sale.Sub(unitPurchase).Div(unitPurchase).Mul(hundred), 2)
		} else {
			// Blank, not zero: margin is undetermined without both prices.
			out.Margin = Blank()
		}
	}

	return out
}

// backfillQuantityPair fills the zero side of a quantity pair from the
// non-zero side (unit = pack * size).
func backfillQuantityPair(pack, unit Cell, size decimal.Decimal) (Cell, Cell) {
	p, u := pack.Decimal(), unit.Decimal()
	switch {
	case p.IsZero() && !u.IsZero():
		pack = Numeric(u.Div(size))
	case u.IsZero() && !p.IsZero():
		unit = Numeric(p.Mul(size))
	}
	return pack, unit
}

// backfillPricePair fills the zero side of a price pair from the non-zero
// side (pack = unit * size).
func backfillPricePair(pack, unit Cell, size decimal.Decimal) (Cell, Cell) {
	p, u := pack.Decimal(), unit.Decimal()
	switch {
	case p.IsZero() && !u.IsZero():
		pack = Numeric(u.Mul(size))
	case u.IsZero() && !p.IsZero():
		unit = Numeric(p.Div(size))
	}
	return pack, unit
}

// ProductDefaults are the per-line defaults the product catalog supplies
// when a product is selected on a line.
type ProductDefaults struct {
	PackSize          decimal.Decimal
	UnitPurchasePrice decimal.Decimal
	UnitSalePrice     decimal.Decimal
}

// ApplyProductDefaults folds catalog defaults into a line and reruns a full
// recalculation. Pack prices are derived from the unit prices and pack size.
func ApplyProductDefaults(r Rules, line LineItem, d ProductDefaults) LineItem {
	line.PackSize = Numeric(d.PackSize)
	line.UnitPurchasePrice = Numeric(d.UnitPurchasePrice)
	if r.SalePrices {
		line.UnitSalePrice = Numeric(d.UnitSalePrice)
	}
	if d.PackSize.IsPositive() {
		line.PackPurchasePrice = Numeric(d.UnitPurchasePrice.Mul(d.PackSize))
		if r.SalePrices {
			line.PackSalePrice = Numeric(d.UnitSalePrice.Mul(d.PackSize))
		}
	}
	return RecalcLine(r, line, FieldNone)
}
