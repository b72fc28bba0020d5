package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func returnLines(subTotals ...string) []LineItem {
	lines := make([]LineItem, len(subTotals))
	for i, s := range subTotals {
		lines[i].SubTotal = dec(s)
	}
	return lines
}

func TestPurchaseReturnTotals(t *testing.T) {
	t.Run("gross is sum of line subtotals", func(t *testing.T) {
		got := RecalcPurchaseReturnTotals(returnLines("100", "250.50"), Totals{}, FieldNone)
		assert.True(t, got.GrossTotal.Equal(dec("350.50")))
		assert.True(t, got.Total.Equal(dec("350.50")), "no discount/tax: total == gross")
	})

	t.Run("percentage edit derives amount", func(t *testing.T) {
		cur := Totals{DiscountPercent: cell("10")}
		got := RecalcPurchaseReturnTotals(returnLines("500"), cur, FieldDiscountPercent)
		assert.True(t, got.DiscountAmount.Decimal().Equal(dec("50")))
		assert.True(t, got.Total.Equal(dec("450")))
		// edited side keeps the raw input
		assert.Equal(t, "10", got.DiscountPercent.Raw())
	})

	t.Run("amount edit derives percentage", func(t *testing.T) {
		cur := Totals{DiscountAmount: cell("50")}
		got := RecalcPurchaseReturnTotals(returnLines("500"), cur, FieldDiscountAmount)
		assert.True(t, got.DiscountPercent.Decimal().Equal(dec("10")))
		assert.Equal(t, "50", got.DiscountAmount.Raw())
	})

	t.Run("amount edit with zero gross derives zero percentage", func(t *testing.T) {
		cur := Totals{DiscountAmount: cell("50")}
		got := RecalcPurchaseReturnTotals(nil, cur, FieldDiscountAmount)
		assert.True(t, got.DiscountPercent.Decimal().IsZero())
	})

	t.Run("discount amount clamped to gross", func(t *testing.T) {
		// two lines subtotaling 500, discount_amount edit of 600
		cur := Totals{DiscountAmount: cell("600")}
		got := RecalcPurchaseReturnTotals(returnLines("300", "200"), cur, FieldDiscountAmount)
		assert.True(t, got.DiscountAmount.Decimal().Equal(dec("500")), "discount_amount = %s", got.DiscountAmount)
		assert.True(t, got.DiscountPercent.Decimal().Equal(dec("100")), "discount_percentage = %s", got.DiscountPercent)
		assert.True(t, got.Total.Equal(dec("0")))
	})

	t.Run("tax applies to post discount base", func(t *testing.T) {
		cur := Totals{DiscountPercent: cell("10"), TaxPercent: cell("15")}
		got := RecalcPurchaseReturnTotals(returnLines("1000"), cur, FieldTaxPercent)
		// base = 1000 - 100 = 900; tax = 135
		assert.True(t, got.TaxAmount.Decimal().Equal(dec("135")))
		assert.True(t, got.Total.Equal(dec("1035")))
	})

	t.Run("tax amount edit derives percentage", func(t *testing.T) {
		cur := Totals{TaxAmount: cell("45")}
		got := RecalcPurchaseReturnTotals(returnLines("900"), cur, FieldTaxAmount)
		assert.True(t, got.TaxPercent.Decimal().Equal(dec("5")))
	})

	t.Run("tax amount floored at zero", func(t *testing.T) {
		cur := Totals{TaxAmount: cell("-20")}
		got := RecalcPurchaseReturnTotals(returnLines("100"), cur, FieldTaxAmount)
		assert.True(t, got.TaxAmount.Decimal().IsZero())
		assert.True(t, got.Total.Equal(dec("100")))
	})

	t.Run("zero values emit numeric zero not blank", func(t *testing.T) {
		got := RecalcPurchaseReturnTotals(returnLines("100"), Totals{}, FieldNone)
		assert.False(t, got.DiscountAmount.IsBlank())
		assert.False(t, got.TaxAmount.IsBlank())
		assert.Equal(t, "0", got.DiscountAmount.Raw())
	})
}

func saleLine(qty, price, pct string) SaleLine {
	return RecalcSaleLine(SaleLine{
		Quantity:            cell(qty),
		Price:               cell(price),
		ItemDiscountPercent: cell(pct),
	}, FieldNone)
}

func TestSaleTotals(t *testing.T) {
	t.Run("gross and item discount sums", func(t *testing.T) {
		lines := []SaleLine{saleLine("3", "100", "5"), saleLine("2", "50", "0")}
		got := RecalcSaleTotals(lines, SaleTotals{}, FieldNone)
		assert.True(t, got.GrossAmount.Equal(dec("400")))
		assert.True(t, got.ItemDiscount.Equal(dec("15")))
		assert.True(t, got.Total.Equal(dec("385")))
	})

	t.Run("header discount subtracted from tax base with item discount", func(t *testing.T) {
		lines := []SaleLine{saleLine("10", "100", "10")} // gross 1000, item disc 100
		cur := SaleTotals{DiscountPercent: cell("10"), TaxPercent: cell("10")}
		got := RecalcSaleTotals(lines, cur, FieldTaxPercent)
		// discount amount derives from the percentage: 100
		assert.True(t, got.DiscountAmount.Decimal().Equal(dec("100")))
		// base = 1000 - 100 - 100 = 800; tax = 80
		assert.True(t, got.TaxAmount.Decimal().Equal(dec("80")), "tax = %s", got.TaxAmount)
		assert.True(t, got.Total.Equal(dec("880")))
	})

	t.Run("unrelated edit re-derives the amount from the percentage", func(t *testing.T) {
		// The percentage is the authoritative side of the pair on every call
		// except a discount_amount edit. An amount carried in with a blank
		// percentage is wiped when the user edits the tax field.
		lines := []SaleLine{saleLine("10", "100", "10")}
		cur := SaleTotals{DiscountAmount: cell("100"), TaxPercent: cell("10")}
		got := RecalcSaleTotals(lines, cur, FieldTaxPercent)
		assert.True(t, got.DiscountAmount.IsBlank(), "discount_amount = %s", got.DiscountAmount)
		// base = 1000 - 100 - 0 = 900; tax = 90
		assert.True(t, got.TaxAmount.Decimal().Equal(dec("90")), "tax = %s", got.TaxAmount)
		assert.True(t, got.Total.Equal(dec("990")))
	})

	t.Run("discount amount edit round trips through percentage", func(t *testing.T) {
		lines := []SaleLine{saleLine("4", "100", "0")} // gross 400
		cur := SaleTotals{DiscountAmount: cell("60")}
		got := RecalcSaleTotals(lines, cur, FieldDiscountAmount)

		pct := got.DiscountPercent.Decimal()
		require.False(t, pct.IsZero())
		reapplied := got.GrossAmount.Mul(pct).Div(dec("100"))
		assert.True(t, reapplied.Sub(dec("60")).Abs().LessThan(dec("0.01")),
			"reapplied = %s", reapplied)
	})

	t.Run("no clamping against gross", func(t *testing.T) {
		lines := []SaleLine{saleLine("1", "100", "0")}
		cur := SaleTotals{DiscountAmount: cell("150")}
		got := RecalcSaleTotals(lines, cur, FieldDiscountAmount)
		assert.Equal(t, "150", got.DiscountAmount.Raw())
		assert.True(t, got.DiscountPercent.Decimal().Equal(dec("150")))
	})

	t.Run("zero derived values emit blank", func(t *testing.T) {
		lines := []SaleLine{saleLine("1", "100", "0")}
		got := RecalcSaleTotals(lines, SaleTotals{}, FieldNone)
		assert.True(t, got.DiscountAmount.IsBlank())
		assert.True(t, got.TaxAmount.IsBlank())
	})
}
