package product

import (
	"context"

	"pharmapos/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByBarcode retrieves a product by barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindLowStock retrieves products whose total stock is below the
	// reorder level.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
