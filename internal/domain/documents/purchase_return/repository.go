// Package purchase_return provides the PurchaseReturn document repository.
package purchase_return

import (
	"context"
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
)

// Repository defines operations for purchase return documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *PurchaseReturn) error
	GetByID(ctx context.Context, docID id.ID) (*PurchaseReturn, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseReturn, error)
	Update(ctx context.Context, doc *PurchaseReturn) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseReturn], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*PurchaseReturn, error)
}

// ListFilter for filtering purchase returns.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	SupplierID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
