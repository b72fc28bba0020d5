package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/purchase_return"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const (
	purchaseReturnsTable     = "doc_purchase_returns"
	purchaseReturnLinesTable = "doc_purchase_return_lines"
)

// PurchaseReturnRepo implements purchase_return.Repository.
type PurchaseReturnRepo struct {
	*BaseDocumentRepo[*purchase_return.PurchaseReturn]
}

var _ purchase_return.Repository = (*PurchaseReturnRepo)(nil)

// NewPurchaseReturnRepo creates a purchase return repository.
func NewPurchaseReturnRepo(txManager *postgres.TxManager) *PurchaseReturnRepo {
	return &PurchaseReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseReturnsTable,
			postgres.ExtractDBColumns[purchase_return.PurchaseReturn](),
			func() *purchase_return.PurchaseReturn { return &purchase_return.PurchaseReturn{} },
		),
	}
}

// GetLines retrieves lines for a purchase return ordered by line number.
func (r *PurchaseReturnRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase_return.Line, error) {
	q := r.Builder().
		Select(lineItemCols...).
		From(purchaseReturnLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase_return.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *PurchaseReturnRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase_return.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + purchaseReturnLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"document_id"}, lineItemCols...)
	q := r.Builder().
		Insert(purchaseReturnLinesTable).
		Columns(cols...)

	for _, line := range lines {
		q = q.Values(
			docID,
			line.LineID, line.LineNo, line.ProductID, line.Batch, line.Expiry,
			line.PackSize, line.PackQuantity, line.UnitQuantity,
			line.PackPurchasePrice, line.UnitPurchasePrice,
			line.PackSalePrice, line.UnitSalePrice,
			line.PackBonus, line.UnitBonus,
			line.ItemDiscountPercent,
			line.Quantity, line.SubTotal, line.AvgPrice, line.Margin,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves purchase returns with filtering.
func (r *PurchaseReturnRepo) List(ctx context.Context, filter purchase_return.ListFilter) (domain.ListResult[*purchase_return.PurchaseReturn], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}

	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"original_invoice_number": searchPattern},
		})
	}

	return r.finishList(ctx, q, filter.ListFilter)
}
