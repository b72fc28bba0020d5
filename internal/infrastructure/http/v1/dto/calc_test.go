package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pharmapos/internal/domain/calc"
)

func TestRecalcPurchaseInvoiceTargetsEditedLine(t *testing.T) {
	line := calc.LineItem{
		PackSize:          calc.FromString("10"),
		PackQuantity:      calc.FromString("5"),
		UnitPurchasePrice: calc.FromString("20"),
		UnitSalePrice:     calc.FromString("25"),
	}

	req := RecalcPurchaseInvoiceRequest{
		Lines:        []calc.LineItem{line, line},
		LineNo:       2,
		ChangedField: calc.FieldUnitPurchasePrice,
	}
	resp := req.Recalc()

	// Pair sync fires only on the edited line
	assert.True(t, resp.Lines[0].PackPurchasePrice.IsBlank())
	assert.True(t, resp.Lines[1].PackPurchasePrice.Decimal().Equal(decimal.NewFromInt(200)),
		"pack_purchase_price = %s", resp.Lines[1].PackPurchasePrice)

	assert.True(t, resp.TotalQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2000)), "total = %s", resp.Total)
}

func TestRecalcPurchaseReturnFooterEdit(t *testing.T) {
	line := calc.LineItem{
		PackSize:          calc.FromString("10"),
		PackQuantity:      calc.FromString("5"),
		PackPurchasePrice: calc.FromString("200"),
	}

	req := RecalcPurchaseReturnRequest{
		Lines:        []calc.LineItem{line},
		Totals:       calc.Totals{DiscountPercent: calc.FromString("10")},
		LineNo:       0,
		ChangedField: calc.FieldDiscountPercent,
	}
	resp := req.Recalc()

	// Pack based subtotal: 5 packs at 200
	assert.True(t, resp.Totals.GrossTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.Totals.DiscountAmount.Decimal().Equal(decimal.NewFromInt(100)),
		"discount_amount = %s", resp.Totals.DiscountAmount)
	assert.True(t, resp.Totals.Total.Equal(decimal.NewFromInt(900)), "total = %s", resp.Totals.Total)
	assert.True(t, resp.TotalQuantity.Equal(decimal.NewFromInt(50)))
}

func TestRecalcSaleDiscountAmountEdit(t *testing.T) {
	line := calc.SaleLine{
		Quantity: calc.FromString("2"),
		Price:    calc.FromString("100"),
	}

	req := RecalcSaleRequest{
		Lines:        []calc.SaleLine{line},
		Totals:       calc.SaleTotals{DiscountAmount: calc.FromString("50")},
		LineNo:       0,
		ChangedField: calc.FieldDiscountAmount,
	}
	resp := req.Recalc()

	// Amount edit derives the percentage side
	assert.True(t, resp.Totals.DiscountPercent.Decimal().Equal(decimal.NewFromInt(25)),
		"discount_percentage = %s", resp.Totals.DiscountPercent)
	assert.True(t, resp.Totals.Total.Equal(decimal.NewFromInt(150)), "total = %s", resp.Totals.Total)
	assert.True(t, resp.Lines[0].SubTotal.Equal(decimal.NewFromInt(200)))
}
