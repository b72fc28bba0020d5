package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"pharmapos/internal/domain/catalogs/supplier"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

var _ supplier.Repository = (*SupplierRepo)(nil)

// NewSupplierRepo creates a Supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// FindByTaxNumber retrieves a supplier by tax registration number.
func (r *SupplierRepo) FindByTaxNumber(ctx context.Context, taxNumber string) (*supplier.Supplier, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(supplierTable).
		Where(squirrel.Eq{"tax_number": taxNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
