// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/registers/stock"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

var stockMovementCols = []string{
	"line_id", "recorder_id", "recorder_type", "recorder_version",
	"period", "record_type",
	"product_id", "batch", "expiry",
	"quantity", "amount", "created_at",
}

var stockBalanceCols = []string{
	"product_id", "batch", "expiry",
	"quantity", "last_movement_at", "updated_at",
}

// StockRepo implements stock.Repository. Balance rows are maintained by
// database triggers on the movements table; RecalculateBalances rebuilds
// them from scratch for recovery.
type StockRepo struct {
	txManager *postgres.TxManager
	inserter  *postgres.BatchInserter
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		inserter:  postgres.NewBatchInserter(txManager),
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)

// CreateMovements batch inserts movements.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Fast path: COPY when inside a transaction (the normal posting flow).
	if tx := r.txManager.GetTx(ctx); tx != nil {
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
				m.Period, m.RecordType,
				m.ProductID, m.Batch, m.Expiry,
				m.Quantity, m.Amount, m.CreatedAt,
			})
		}
		if _, err := r.inserter.CopyFromSlice(ctx, stockMovementsTable, stockMovementCols, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockMovementsTable).Columns(stockMovementCols...)
	for _, m := range movements {
		q = q.Values(
			m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
			m.Period, m.RecordType,
			m.ProductID, m.Batch, m.Expiry,
			m.Quantity, m.Amount, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// DeleteMovementsByRecorder removes movements for a document with
// recorder_version below the given one.
func (r *StockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	q := r.builder.Delete(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		Where(squirrel.Lt{"recorder_version": beforeVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	return nil
}

// GetMovementsByRecorder retrieves movements for a document.
func (r *StockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetBalance returns current balance for product+batch.
// A batch that never moved reads as zero.
func (r *StockRepo) GetBalance(ctx context.Context, productID id.ID, batch string) (entity.StockBalance, error) {
	return r.getBalance(ctx, productID, batch, false)
}

// GetBalanceForUpdate returns balance with pessimistic lock.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, productID id.ID, batch string) (entity.StockBalance, error) {
	return r.getBalance(ctx, productID, batch, true)
}

func (r *StockRepo) getBalance(ctx context.Context, productID id.ID, batch string, forUpdate bool) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select(stockBalanceCols...).
		From(stockBalancesTable).
		Where(squirrel.Eq{
			"product_id": productID,
			"batch":      batch,
		}).Limit(1)

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				ProductID: productID,
				Batch:     batch,
				Quantity:  0,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalancesByProduct returns non-zero balances across batches for a product.
func (r *StockRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	q := r.builder.Select(stockBalanceCols...).
		From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("expiry NULLS LAST", "batch")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// ListBalances returns balances matching the filter.
func (r *StockRepo) ListBalances(ctx context.Context, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	q := r.builder.Select(stockBalanceCols...).
		From(stockBalancesTable)

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}

	if filter.Batch != "" {
		q = q.Where(squirrel.Eq{"batch": filter.Batch})
	}

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": int64(0)})
	}

	if filter.MinQuantity != nil {
		q = q.Where(squirrel.GtOrEq{"quantity": filter.MinQuantity.Int64Scaled()})
	}

	q = q.OrderBy("product_id", "expiry NULLS LAST", "batch")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetExpiringBatches returns in-stock batches expiring on or before the date.
func (r *StockRepo) GetExpiringBatches(ctx context.Context, before time.Time) ([]entity.StockBalance, error) {
	q := r.builder.Select(stockBalanceCols...).
		From(stockBalancesTable).
		Where(squirrel.Gt{"quantity": int64(0)}).
		Where(squirrel.NotEq{"expiry": nil}).
		Where(squirrel.LtOrEq{"expiry": before}).
		OrderBy("expiry", "product_id", "batch")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select expiring batches: %w", err)
	}

	return balances, nil
}

// GetMovementHistory returns movement history for a product.
func (r *StockRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.Batch != "" {
		q = q.Where(squirrel.Eq{"batch": filter.Batch})
	}

	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"period": *filter.FromDate})
	}

	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"period": *filter.ToDate})
	}

	q = q.OrderBy("period DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// RecalculateBalances rebuilds balance rows from movements. Pass a product
// to limit the rebuild; nil rebuilds everything. Intended for recovery after
// manual data fixes, not for the normal posting path.
func (r *StockRepo) RecalculateBalances(ctx context.Context, productID *id.ID) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		deleteSQL := "DELETE FROM " + stockBalancesTable
		var deleteArgs []any
		if productID != nil {
			deleteSQL += " WHERE product_id = $1"
			deleteArgs = append(deleteArgs, *productID)
		}
		if _, err := querier.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("clear balances: %w", err)
		}

		insertSQL := `
			INSERT INTO ` + stockBalancesTable + ` (product_id, batch, expiry, quantity, last_movement_at, updated_at)
			SELECT
				product_id,
				batch,
				MAX(expiry),
				SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END),
				MAX(period),
				NOW()
			FROM ` + stockMovementsTable

		var insertArgs []any
		if productID != nil {
			insertSQL += " WHERE product_id = $1"
			insertArgs = append(insertArgs, *productID)
		}
		insertSQL += " GROUP BY product_id, batch"

		if _, err := querier.Exec(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("rebuild balances: %w", err)
		}

		return nil
	})
}
