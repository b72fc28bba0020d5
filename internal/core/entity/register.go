// Package entity provides core domain entities.
package entity

import (
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
)

// RecordType defines movement direction for accumulation registers.
type RecordType string

const (
	// RecordTypeReceipt increases balance
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases balance
	RecordTypeExpense RecordType = "expense"
)

// MovementBase contains common fields for all register movements.
// Movements are immutable - they are never updated, only deleted and recreated.
type MovementBase struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID is the document that created this movement
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the document type (e.g., "PurchaseInvoice", "SaleInvoice")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// RecorderVersion tracks which posting iteration created this movement.
	// Allows efficient cleanup: DELETE WHERE recorder_id = X AND recorder_version < Y
	RecorderVersion int `db:"recorder_version" json:"recorderVersion"`

	// Period is the business date for the movement (for period-based queries)
	Period time.Time `db:"period" json:"period"`

	// RecordType: receipt or expense
	RecordType RecordType `db:"record_type" json:"recordType"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovementBase creates a new movement base with generated LineID.
func NewMovementBase(recorderID id.ID, recorderType string, recorderVersion int, period time.Time, recordType RecordType) MovementBase {
	return MovementBase{
		LineID:          id.New(),
		RecorderID:      recorderID,
		RecorderType:    recorderType,
		RecorderVersion: recorderVersion,
		Period:          period,
		RecordType:      recordType,
		CreatedAt:       time.Now().UTC(),
	}
}

// StockMovement represents a movement in the batch-tracked stock register.
// Pharmacy stock is dimensioned by product and batch; expiry travels with
// the batch as an attribute so expiring stock can be reported.
type StockMovement struct {
	MovementBase

	// Dimensions
	ProductID id.ID  `db:"product_id" json:"productId"`
	Batch     string `db:"batch" json:"batch"`

	// Attributes
	Expiry *time.Time `db:"expiry" json:"expiry,omitempty"`

	// Resources
	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Amount   types.Money    `db:"amount" json:"amount"`
}

// NewStockMovement creates a new stock movement.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	recorderVersion int,
	period time.Time,
	recordType RecordType,
	productID id.ID,
	batch string,
	expiry *time.Time,
	quantity types.Quantity,
	amount types.Money,
) StockMovement {
	return StockMovement{
		MovementBase: NewMovementBase(recorderID, recorderType, recorderVersion, period, recordType),
		ProductID:    productID,
		Batch:        batch,
		Expiry:       expiry,
		Quantity:     quantity,
		Amount:       amount,
	}
}

// SignedQuantity returns quantity with sign based on record type.
// Receipt = positive, Expense = negative.
func (m *StockMovement) SignedQuantity() types.Quantity {
	if m.RecordType == RecordTypeExpense {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// StockBalance represents current balance for a product batch.
// This is a materialized view for fast balance and expiry queries.
type StockBalance struct {
	// Dimensions
	ProductID id.ID  `db:"product_id" json:"productId"`
	Batch     string `db:"batch" json:"batch"`

	// Attributes
	Expiry *time.Time `db:"expiry" json:"expiry,omitempty"`

	// Balances
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Metadata
	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
