package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cell(s string) Cell {
	return FromString(s)
}

func TestRecalcLinePurchaseInvoiceScenario(t *testing.T) {
	// pack_size=10, pack_quantity=5, unit_purchase_price=20, discount 10%
	// => total_units=50, sub_total_before_discount=1000, sub_total=900, avg_price=18
	line := LineItem{
		PackSize:            cell("10"),
		PackQuantity:        cell("5"),
		UnitPurchasePrice:   cell("20"),
		ItemDiscountPercent: cell("10"),
	}

	got := RecalcLine(PurchaseInvoiceRules, line, FieldNone)

	assert.True(t, got.Quantity.Equal(dec("50")), "quantity = %s", got.Quantity)
	assert.True(t, got.SubTotal.Equal(dec("900")), "sub_total = %s", got.SubTotal)
	assert.True(t, got.AvgPrice.Equal(dec("18")), "avg_price = %s", got.AvgPrice)
}

func TestRecalcLineQuantitySync(t *testing.T) {
	tests := []struct {
		name     string
		line     LineItem
		edited   Field
		wantPack string
		wantUnit string
	}{
		{
			name: "pack edit derives units",
			line: LineItem{
				PackSize:     cell("12"),
				PackQuantity: cell("3"),
			},
			edited:   FieldPackQuantity,
			wantPack: "3",
			wantUnit: "36",
		},
		{
			name: "unit edit derives packs",
			line: LineItem{
				PackSize:     cell("12"),
				UnitQuantity: cell("36"),
			},
			edited:   FieldUnitQuantity,
			wantPack: "3",
			wantUnit: "36",
		},
		{
			name: "pack size zero disables sync",
			line: LineItem{
				PackSize:     cell("0"),
				PackQuantity: cell("3"),
			},
			edited:   FieldPackQuantity,
			wantPack: "3",
			wantUnit: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecalcLine(PurchaseInvoiceRules, tt.line, tt.edited)
			assert.True(t, got.PackQuantity.Decimal().Equal(dec0(tt.wantPack)),
				"pack_quantity = %s", got.PackQuantity)
			assert.True(t, got.UnitQuantity.Decimal().Equal(dec0(tt.wantUnit)),
				"unit_quantity = %s", got.UnitQuantity)
		})
	}
}

func dec0(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(s)
}

func TestRecalcLinePairSyncIdempotent(t *testing.T) {
	// Recomputing from pack_quantity and then from the resulting
	// unit_quantity must land back on the same pack_quantity.
	sizes := []string{"1", "3", "7", "10", "12", "100"}
	for _, size := range sizes {
		line := LineItem{
			PackSize:     cell(size),
			PackQuantity: cell("5"),
		}
		first := RecalcLine(PurchaseInvoiceRules, line, FieldPackQuantity)
		second := RecalcLine(PurchaseInvoiceRules, first, FieldUnitQuantity)
		assert.True(t, second.PackQuantity.Decimal().Equal(dec("5")),
			"size %s: pack_quantity = %s", size, second.PackQuantity)
	}
}

func TestRecalcLinePriceSync(t *testing.T) {
	line := LineItem{
		PackSize:          cell("10"),
		PackPurchasePrice: cell("200"),
	}
	got := RecalcLine(PurchaseInvoiceRules, line, FieldPackPurchasePrice)
	assert.True(t, got.UnitPurchasePrice.Decimal().Equal(dec("20")))

	line = LineItem{
		PackSize:      cell("10"),
		UnitSalePrice: cell("25"),
	}
	got = RecalcLine(PurchaseInvoiceRules, line, FieldUnitSalePrice)
	assert.True(t, got.PackSalePrice.Decimal().Equal(dec("250")))
}

func TestRecalcLineBonusSyncDirection(t *testing.T) {
	// Bonus pairs are the mirror image of quantity: pack edit multiplies,
	// unit edit divides.
	line := LineItem{
		PackSize:  cell("10"),
		PackBonus: cell("2"),
	}
	got := RecalcLine(PurchaseInvoiceRules, line, FieldPackBonus)
	assert.True(t, got.UnitBonus.Decimal().Equal(dec("20")), "unit_bonus = %s", got.UnitBonus)

	line = LineItem{
		PackSize:  cell("10"),
		UnitBonus: cell("20"),
	}
	got = RecalcLine(PurchaseInvoiceRules, line, FieldUnitBonus)
	assert.True(t, got.PackBonus.Decimal().Equal(dec("2")), "pack_bonus = %s", got.PackBonus)
}

func TestRecalcLineBonusUnitsInQuantityNotCost(t *testing.T) {
	line := LineItem{
		PackSize:          cell("10"),
		PackQuantity:      cell("2"),
		UnitBonus:         cell("5"),
		UnitPurchasePrice: cell("4"),
	}
	got := RecalcLine(PurchaseInvoiceRules, line, FieldNone)

	// 2*10 + 0 + 5 bonus units
	assert.True(t, got.Quantity.Equal(dec("25")), "quantity = %s", got.Quantity)
	assert.True(t, got.SubTotal.Equal(dec("100")), "sub_total = %s", got.SubTotal)
	assert.True(t, got.AvgPrice.Equal(dec("4")), "avg_price = %s", got.AvgPrice)
}

func TestRecalcLineSubtotalFormula(t *testing.T) {
	// sub_total == (packs*size + units + bonus) * unit_price * (1 - pct/100)
	tests := []struct {
		packSize, packQty, unitQty, bonus, price, pct string
	}{
		{"10", "5", "0", "0", "20", "10"},
		{"6", "2", "3", "1", "7.5", "0"},
		{"1", "0", "11", "0", "3", "25"},
		{"24", "1", "0", "12", "0.5", "50"},
	}

	for _, tt := range tests {
		line := LineItem{
			PackSize:            cell(tt.packSize),
			PackQuantity:        cell(tt.packQty),
			UnitQuantity:        cell(tt.unitQty),
			UnitBonus:           cell(tt.bonus),
			UnitPurchasePrice:   cell(tt.price),
			ItemDiscountPercent: cell(tt.pct),
		}
		got := RecalcLine(PurchaseInvoiceRules, line, FieldNone)

		units := dec(tt.packQty).Mul(dec(tt.packSize)).Add(dec(tt.unitQty)).Add(dec(tt.bonus))
		gross := units.Mul(dec(tt.price))
		want := gross.Sub(gross.Mul(dec(tt.pct)).Div(dec("100")))
		assert.True(t, got.SubTotal.Equal(want),
			"size=%s: sub_total = %s, want %s", tt.packSize, got.SubTotal, want)
	}
}

func TestRecalcLineMarginBlankNotZero(t *testing.T) {
	// Margin is blank (not "0") whenever unit_purchase_price == 0.
	line := LineItem{
		PackSize:      cell("10"),
		UnitSalePrice: cell("25"),
	}
	got := RecalcLine(PurchaseInvoiceRules, line, FieldNone)
	assert.True(t, got.Margin.IsBlank(), "margin = %q", got.Margin.Raw())

	line.UnitPurchasePrice = cell("20")
	got = RecalcLine(PurchaseInvoiceRules, line, FieldNone)
	require.False(t, got.Margin.IsBlank())
	assert.Equal(t, "25.00", got.Margin.Raw())
}

func TestRecalcLineEditedFieldKeepsRawInput(t *testing.T) {
	// In-progress typing ("5.") must never be rewritten by the engine.
	line := LineItem{
		PackSize:     cell("10"),
		PackQuantity: cell("5."),
	}
	got := RecalcLine(PurchaseReturnRules, line, FieldPackQuantity)
	assert.Equal(t, "5.", got.PackQuantity.Raw())
	assert.True(t, got.UnitQuantity.Decimal().Equal(dec("50")))
}

func TestRecalcLinePurchaseReturn(t *testing.T) {
	t.Run("pack based subtotal rounded", func(t *testing.T) {
		line := LineItem{
			PackSize:            cell("10"),
			PackQuantity:        cell("3"),
			PackPurchasePrice:   cell("33.333"),
			ItemDiscountPercent: cell("5"),
		}
		got := RecalcLine(PurchaseReturnRules, line, FieldNone)
		// 3 * 33.333 = 99.999; -5% = 94.99905; rounded
		assert.True(t, got.SubTotal.Equal(dec("95.00")), "sub_total = %s", got.SubTotal)
	})

	t.Run("no margin or avg price outputs", func(t *testing.T) {
		line := LineItem{
			PackSize:          cell("10"),
			PackQuantity:      cell("2"),
			PackPurchasePrice: cell("50"),
			UnitSalePrice:     cell("99"),
		}
		got := RecalcLine(PurchaseReturnRules, line, FieldNone)
		assert.True(t, got.AvgPrice.IsZero())
		assert.True(t, got.Margin.IsBlank())
	})

	t.Run("pack size backfill protects entered data", func(t *testing.T) {
		line := LineItem{
			PackSize:          cell("10"),
			PackQuantity:      cell("4"),
			UnitPurchasePrice: cell("2"),
		}
		got := RecalcLine(PurchaseReturnRules, line, FieldPackSize)
		assert.True(t, got.UnitQuantity.Decimal().Equal(dec("40")),
			"unit_quantity backfilled = %s", got.UnitQuantity)
		assert.True(t, got.PackPurchasePrice.Decimal().Equal(dec("20")),
			"pack_purchase_price backfilled = %s", got.PackPurchasePrice)
	})

	t.Run("backfill leaves two sided pairs alone", func(t *testing.T) {
		line := LineItem{
			PackSize:     cell("10"),
			PackQuantity: cell("4"),
			UnitQuantity: cell("7"),
		}
		got := RecalcLine(PurchaseReturnRules, line, FieldPackSize)
		assert.Equal(t, "4", got.PackQuantity.Raw())
		assert.Equal(t, "7", got.UnitQuantity.Raw())
	})
}

func TestApplyProductDefaults(t *testing.T) {
	line := LineItem{ProductID: "p1", Batch: "B100"}
	got := ApplyProductDefaults(PurchaseInvoiceRules, line, ProductDefaults{
		PackSize:          dec("10"),
		UnitPurchasePrice: dec("20"),
		UnitSalePrice:     dec("25"),
	})

	assert.True(t, got.PackSize.Decimal().Equal(dec("10")))
	assert.True(t, got.PackPurchasePrice.Decimal().Equal(dec("200")))
	assert.True(t, got.PackSalePrice.Decimal().Equal(dec("250")))
	assert.Equal(t, "25.00", got.Margin.Raw())
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, "B100", got.Batch)
}

func TestRecalcSaleLine(t *testing.T) {
	// quantity=3, price=100, discount 5% => sub_total=285.00
	line := SaleLine{
		Quantity:            cell("3"),
		Price:               cell("100"),
		ItemDiscountPercent: cell("5"),
	}
	got := RecalcSaleLine(line, FieldQuantity)

	assert.True(t, got.SubTotal.Equal(dec("285.00")), "sub_total = %s", got.SubTotal)
	assert.True(t, got.ItemDiscountAmount.Equal(dec("15")), "discount = %s", got.ItemDiscountAmount)
	// edited field untouched
	assert.Equal(t, "3", got.Quantity.Raw())
}
