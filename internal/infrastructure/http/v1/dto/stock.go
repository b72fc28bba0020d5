package dto

import (
	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/types"
)

// --- Response DTOs for the stock register ---

// Balance and movement entities are already wire-shaped, so the register
// endpoints return them directly inside list envelopes.

// StockBalanceListResponse represents a list of batch balances.
type StockBalanceListResponse struct {
	Items []entity.StockBalance `json:"items"`
}

// StockMovementListResponse represents a slice of movement history.
type StockMovementListResponse struct {
	Items  []entity.StockMovement `json:"items"`
	Limit  int                    `json:"limit,omitempty"`
	Offset int                    `json:"offset,omitempty"`
}

// ProductAvailabilityResponse represents total on-hand quantity across batches.
type ProductAvailabilityResponse struct {
	ProductID string         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
}
