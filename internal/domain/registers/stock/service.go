// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"fmt"
	"time"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/types"
	"pharmapos/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (the posting engine).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordMovements records stock movements from a document posting.
// This is called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	// Create movements (triggers will update balances)
	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting
// and before re-posting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// CheckAvailability validates batch stock for expense movements with
// pessimistic locking. Must be called within a transaction, after prior
// movements of the recorder have been reversed.
func (s *Service) CheckAvailability(ctx context.Context, movements []entity.StockMovement) error {
	for _, m := range movements {
		if m.RecordType != entity.RecordTypeExpense {
			continue
		}

		balance, err := s.repo.GetBalanceForUpdate(ctx, m.ProductID, m.Batch)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("get balance for %s/%s: %w", m.ProductID, m.Batch, err)
		}

		if balance.Quantity < m.Quantity {
			return apperror.NewInsufficientStock(
				m.ProductID.String(),
				m.Batch,
				m.Quantity.Float64(),
				balance.Quantity.Float64(),
			)
		}
	}

	return nil
}

// GetProductAvailability returns available quantity across batches.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balances, err := s.repo.GetBalancesByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get balances: %w", err)
	}

	var total types.Quantity
	for _, b := range balances {
		total += b.Quantity
	}

	return total, nil
}

// GetBatchBalances returns all non-zero batch balances for a product.
func (s *Service) GetBatchBalances(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	return s.repo.ListBalances(ctx, BalanceFilter{
		ProductIDs:  []id.ID{productID},
		ExcludeZero: true,
	})
}

// GetExpiringBatches returns batches that expire on or before the date.
func (s *Service) GetExpiringBatches(ctx context.Context, before time.Time) ([]entity.StockBalance, error) {
	return s.repo.GetExpiringBatches(ctx, before)
}

// GetMovementHistory returns movement history for a product.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}
