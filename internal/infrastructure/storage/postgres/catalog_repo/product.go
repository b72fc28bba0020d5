package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/domain"
	"pharmapos/internal/domain/catalogs/product"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// Compile-time interface check.
var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a Product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByBarcode retrieves a product by barcode.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(productTable).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// FindLowStock retrieves products whose total on-hand quantity is below
// the reorder level. Products with no movements at all count as zero stock.
func (r *ProductRepo) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	cols := make([]string, 0, len(r.selectCols))
	for _, col := range r.selectCols {
		cols = append(cols, "p."+col)
	}

	q := r.Builder().
		Select(cols...).
		From(productTable + " p").
		LeftJoin("(SELECT product_id, SUM(quantity) AS total_qty FROM reg_stock_balances GROUP BY product_id) b ON b.product_id = p.id").
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where("p.reorder_level > 0").
		Where("COALESCE(b.total_qty, 0) < p.reorder_level")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.code": pattern},
		})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, err
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, err
	}

	q = q.OrderBy("p.name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, err
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, err
	}

	return result, nil
}
