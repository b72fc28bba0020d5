// Package sale_invoice provides the SaleInvoice document repository.
package sale_invoice

import (
	"context"
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
)

// Repository defines operations for sale invoice documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *SaleInvoice) error
	GetByID(ctx context.Context, docID id.ID) (*SaleInvoice, error)
	GetByNumber(ctx context.Context, number string) (*SaleInvoice, error)
	Update(ctx context.Context, doc *SaleInvoice) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleInvoice], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*SaleInvoice, error)
}

// ListFilter for filtering sale invoices.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	CustomerID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
