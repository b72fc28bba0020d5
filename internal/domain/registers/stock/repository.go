// Package stock provides the batch-tracked stock accumulation register.
package stock

import (
	"context"
	"time"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements (used during posting)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements for a document with
	// recorder_version below the given one. Used during unposting and
	// re-posting.
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance operations

	// GetBalance returns current balance for product+batch
	GetBalance(ctx context.Context, productID id.ID, batch string) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with row lock for stock control
	GetBalanceForUpdate(ctx context.Context, productID id.ID, batch string) (entity.StockBalance, error)

	// GetBalancesByProduct returns balances across all batches for a product
	GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error)

	// ListBalances returns balances matching the filter
	ListBalances(ctx context.Context, filter BalanceFilter) ([]entity.StockBalance, error)

	// GetExpiringBatches returns batches expiring on or before the date
	GetExpiringBatches(ctx context.Context, before time.Time) ([]entity.StockBalance, error)

	// Reporting

	// GetMovementHistory returns movement history for a product
	GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// Maintenance

	// RecalculateBalances rebuilds balance rows from movements
	RecalculateBalances(ctx context.Context, productID *id.ID) error
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ProductIDs  []id.ID
	Batch       string
	ExcludeZero bool
	MinQuantity *types.Quantity
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	Batch      string
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
