package sale_invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
	"pharmapos/internal/domain/calc"
)

func saleLine(productID, batch, qty, price string) calc.SaleLine {
	return calc.SaleLine{
		ProductID: productID,
		Batch:     batch,
		Expiry:    "2027-06-30",
		Quantity:  calc.FromString(qty),
		Price:     calc.FromString(price),
	}
}

func TestAddLineComputesFooter(t *testing.T) {
	doc := NewSaleInvoice(nil)

	discounted := saleLine(id.New().String(), "B1", "2", "100")
	discounted.ItemDiscountPercent = calc.FromString("10")
	doc.AddLine(discounted)
	doc.AddLine(saleLine(id.New().String(), "B2", "3", "50"))

	// Line 1: gross 200, item discount 20, subtotal 180. Line 2: 150.
	assert.True(t, doc.GrossAmount.Equal(decimal.NewFromInt(350)), "gross_amount = %s", doc.GrossAmount)
	assert.True(t, doc.ItemDiscount.Equal(decimal.NewFromInt(20)), "item_discount = %s", doc.ItemDiscount)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(330)), "total = %s", doc.Total)
	assert.True(t, doc.TotalQuantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, doc.Lines[1].LineNo)
}

func TestRecalcTotalsHeaderDiscountAndTax(t *testing.T) {
	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(id.New().String(), "B1", "2", "100"))

	doc.DiscountPercent = calc.FromString("10")
	doc.TaxPercent = calc.FromString("5")
	doc.RecalcTotals(calc.FieldNone)

	// gross 200, discount 20, base 180, tax 9
	assert.True(t, doc.DiscountAmount.Decimal().Equal(decimal.NewFromInt(20)), "discount_amount = %s", doc.DiscountAmount)
	assert.True(t, doc.TaxAmount.Decimal().Equal(decimal.NewFromInt(9)), "tax_amount = %s", doc.TaxAmount)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(189)), "total = %s", doc.Total)
}

func TestRecalcTotalsDiscountAmountEdit(t *testing.T) {
	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(id.New().String(), "B1", "2", "100"))

	// Editing the amount side derives the percentage
	doc.DiscountAmount = calc.FromString("50")
	doc.RecalcTotals(calc.FieldDiscountAmount)

	assert.True(t, doc.DiscountPercent.Decimal().Equal(decimal.NewFromInt(25)), "discount_percentage = %s", doc.DiscountPercent)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(150)), "total = %s", doc.Total)
}

func TestRecalcLineOutOfRange(t *testing.T) {
	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(id.New().String(), "B1", "1", "10"))

	err := doc.RecalcLine(2, calc.FieldQuantity)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestValidateRequiresLines(t *testing.T) {
	doc := NewSaleInvoice(nil)

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestValidateDuplicateBatch(t *testing.T) {
	productID := id.New().String()

	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(productID, "BATCH-1", "1", "10"))
	doc.AddLine(saleLine(productID, "BATCH-1", "2", "10"))

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicateBatch, appErr.Code)
}

func TestValidateNonPositiveQuantity(t *testing.T) {
	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(id.New().String(), "B1", "0", "10"))

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGenerateMovementsExpenses(t *testing.T) {
	doc := NewSaleInvoice(nil)
	doc.AddLine(saleLine(id.New().String(), "B1", "2", "100"))
	doc.AddLine(saleLine(id.New().String(), "B2", "3", "50"))

	movements, err := doc.GenerateMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, movements.Stock, 2)

	for i, m := range movements.Stock {
		line := doc.Lines[i]
		assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
		assert.Equal(t, doc.ID, m.RecorderID)
		assert.Equal(t, "SaleInvoice", m.RecorderType)
		assert.Equal(t, doc.PostedVersion+1, m.RecorderVersion)
		assert.Equal(t, line.Batch, m.Batch)
		assert.Equal(t, types.NewQuantityFromDecimal(line.Quantity.Decimal()), m.Quantity)
		assert.True(t, m.Amount.Equal(line.SubTotal), "amount = %s", m.Amount)
	}
}
