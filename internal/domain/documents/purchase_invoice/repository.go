// Package purchase_invoice provides the PurchaseInvoice document repository.
package purchase_invoice

import (
	"context"
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
)

// Repository defines operations for purchase invoice documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *PurchaseInvoice) error
	GetByID(ctx context.Context, docID id.ID) (*PurchaseInvoice, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseInvoice, error)
	Update(ctx context.Context, doc *PurchaseInvoice) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseInvoice], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*PurchaseInvoice, error)
}

// ListFilter for filtering purchase invoices.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	SupplierID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
