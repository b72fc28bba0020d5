// Package sale_return provides the SaleReturn document repository.
package sale_return

import (
	"context"
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
)

// Repository defines operations for sale return documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *SaleReturn) error
	GetByID(ctx context.Context, docID id.ID) (*SaleReturn, error)
	GetByNumber(ctx context.Context, number string) (*SaleReturn, error)
	Update(ctx context.Context, doc *SaleReturn) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleReturn], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*SaleReturn, error)
}

// ListFilter for filtering sale returns.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	CustomerID         *id.ID
	OriginalSaleNumber *string
	Posted             *bool
	DateFrom           *time.Time
	DateTo             *time.Time
}
