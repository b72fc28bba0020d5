package purchase_invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/calc"
)

func testLine(productID, batch string) calc.LineItem {
	return calc.LineItem{
		ProductID:         productID,
		Batch:             batch,
		Expiry:            "2027-06",
		PackSize:          calc.FromString("10"),
		PackQuantity:      calc.FromString("5"),
		UnitPurchasePrice: calc.FromString("20"),
		UnitSalePrice:     calc.FromString("25"),
	}
}

func TestAddLineRecalculatesTotals(t *testing.T) {
	doc := NewPurchaseInvoice(id.New())
	doc.AddLine(testLine(id.New().String(), "B1"))
	doc.AddLine(testLine(id.New().String(), "B2"))

	// 50 units per line at 20 each
	assert.True(t, doc.TotalQuantity.Equal(decimal.NewFromInt(100)), "total_quantity = %s", doc.TotalQuantity)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(2000)), "total = %s", doc.Total)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
}

func TestValidateDuplicateBatch(t *testing.T) {
	productID := id.New().String()

	doc := NewPurchaseInvoice(id.New())
	doc.AddLine(testLine(productID, "BATCH-1"))
	doc.AddLine(testLine(productID, "BATCH-1"))

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicateBatch, appErr.Code)
}

func TestValidateSameBatchDifferentProducts(t *testing.T) {
	doc := NewPurchaseInvoice(id.New())
	doc.AddLine(testLine(id.New().String(), "BATCH-1"))
	doc.AddLine(testLine(id.New().String(), "BATCH-1"))

	assert.NoError(t, doc.Validate(context.Background()))
}

func TestValidateNegativeMargin(t *testing.T) {
	line := testLine(id.New().String(), "B1")
	line.UnitSalePrice = calc.FromString("15") // below the 20 purchase price

	doc := NewPurchaseInvoice(id.New())
	doc.AddLine(line)

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNegativeMargin, appErr.Code)
}

func TestValidateStatedAmountTolerance(t *testing.T) {
	// Line total is 1000
	newDoc := func() *PurchaseInvoice {
		doc := NewPurchaseInvoice(id.New())
		doc.AddLine(testLine(id.New().String(), "B1"))
		return doc
	}

	doc := newDoc()
	doc.StatedAmount = calc.FromString("1000.75")
	assert.NoError(t, doc.Validate(context.Background()), "within tolerance")

	doc = newDoc()
	doc.StatedAmount = calc.FromString("1002.50")
	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAmountMismatch, appErr.Code)

	// Blank skips the cross-check entirely
	doc = newDoc()
	doc.StatedAmount = calc.Blank()
	assert.NoError(t, doc.Validate(context.Background()))
}

func TestValidateMissingSupplier(t *testing.T) {
	doc := NewPurchaseInvoice(id.Nil())
	doc.AddLine(testLine(id.New().String(), "B1"))

	err := doc.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGenerateMovementsReceipts(t *testing.T) {
	doc := NewPurchaseInvoice(id.New())
	doc.AddLine(testLine(id.New().String(), "B1"))
	doc.AddLine(testLine(id.New().String(), "B2"))

	movements, err := doc.GenerateMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, movements.Stock, 2)

	for i, m := range movements.Stock {
		assert.Equal(t, entity.RecordTypeReceipt, m.RecordType)
		assert.Equal(t, doc.ID, m.RecorderID)
		assert.Equal(t, "PurchaseInvoice", m.RecorderType)
		assert.Equal(t, doc.PostedVersion+1, m.RecorderVersion)
		assert.Equal(t, doc.Lines[i].Batch, m.Batch)
		require.NotNil(t, m.Expiry)
		// Month precision normalizes to the last day of the month
		assert.Equal(t, "2027-06-30", m.Expiry.Format("2006-01-02"))
	}
}
