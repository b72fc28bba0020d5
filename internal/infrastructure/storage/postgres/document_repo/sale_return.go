package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/sale_return"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const (
	saleReturnsTable     = "doc_sale_returns"
	saleReturnLinesTable = "doc_sale_return_lines"
)

// SaleReturnRepo implements sale_return.Repository.
type SaleReturnRepo struct {
	*BaseDocumentRepo[*sale_return.SaleReturn]
}

var _ sale_return.Repository = (*SaleReturnRepo)(nil)

// NewSaleReturnRepo creates a sale return repository.
func NewSaleReturnRepo(txManager *postgres.TxManager) *SaleReturnRepo {
	return &SaleReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			saleReturnsTable,
			postgres.ExtractDBColumns[sale_return.SaleReturn](),
			func() *sale_return.SaleReturn { return &sale_return.SaleReturn{} },
		),
	}
}

// GetLines retrieves lines for a sale return ordered by line number.
func (r *SaleReturnRepo) GetLines(ctx context.Context, docID id.ID) ([]sale_return.Line, error) {
	q := r.Builder().
		Select(saleLineCols...).
		From(saleReturnLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale_return.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *SaleReturnRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale_return.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + saleReturnLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"document_id"}, saleLineCols...)
	q := r.Builder().
		Insert(saleReturnLinesTable).
		Columns(cols...)

	for _, line := range lines {
		q = q.Values(
			docID,
			line.LineID, line.LineNo, line.ProductID, line.Batch, line.Expiry,
			line.Quantity, line.Price,
			line.ItemDiscountPercent, line.ItemDiscountAmount,
			line.SubTotal,
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

// List retrieves sale returns with filtering.
func (r *SaleReturnRepo) List(ctx context.Context, filter sale_return.ListFilter) (domain.ListResult[*sale_return.SaleReturn], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.OriginalSaleNumber != nil {
		q = q.Where(squirrel.Eq{"original_sale_number": *filter.OriginalSaleNumber})
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
			squirrel.ILike{"original_sale_number": searchPattern},
		})
	}

	return r.finishList(ctx, q, filter.ListFilter)
}
