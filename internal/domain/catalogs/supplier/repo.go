package supplier

import (
	"context"

	"pharmapos/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// FindByTaxNumber retrieves a supplier by tax registration number.
	FindByTaxNumber(ctx context.Context, taxNumber string) (*Supplier, error)
}
