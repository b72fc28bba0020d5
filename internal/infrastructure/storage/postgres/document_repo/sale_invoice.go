package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/sale_invoice"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const (
	saleInvoicesTable     = "doc_sale_invoices"
	saleInvoiceLinesTable = "doc_sale_invoice_lines"
)

// saleLineCols are the columns of a unit-only sale line table part, shared
// by sale invoices and sale returns.
var saleLineCols = []string{
	"line_id", "line_no", "product_id", "batch", "expiry",
	"quantity", "price",
	"item_discount_percentage", "item_discount_amount",
	"sub_total",
}

// SaleInvoiceRepo implements sale_invoice.Repository.
type SaleInvoiceRepo struct {
	*BaseDocumentRepo[*sale_invoice.SaleInvoice]
}

var _ sale_invoice.Repository = (*SaleInvoiceRepo)(nil)

// NewSaleInvoiceRepo creates a sale invoice repository.
func NewSaleInvoiceRepo(txManager *postgres.TxManager) *SaleInvoiceRepo {
	return &SaleInvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			saleInvoicesTable,
			postgres.ExtractDBColumns[sale_invoice.SaleInvoice](),
			func() *sale_invoice.SaleInvoice { return &sale_invoice.SaleInvoice{} },
		),
	}
}

// GetLines retrieves lines for a sale invoice ordered by line number.
func (r *SaleInvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]sale_invoice.Line, error) {
	q := r.Builder().
		Select(saleLineCols...).
		From(saleInvoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale_invoice.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *SaleInvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale_invoice.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + saleInvoiceLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"document_id"}, saleLineCols...)
	q := r.Builder().
		Insert(saleInvoiceLinesTable).
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

// List retrieves sale invoices with filtering.
func (r *SaleInvoiceRepo) List(ctx context.Context, filter sale_invoice.ListFilter) (domain.ListResult[*sale_invoice.SaleInvoice], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
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
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.finishList(ctx, q, filter.ListFilter)
}
