package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/documents/purchase_invoice"
	"pharmapos/internal/infrastructure/storage/postgres"
)

const (
	purchaseInvoicesTable     = "doc_purchase_invoices"
	purchaseInvoiceLinesTable = "doc_purchase_invoice_lines"
)

// lineItemCols are the columns of a pack/unit line table part, shared by
// purchase invoices and purchase returns.
var lineItemCols = []string{
	"line_id", "line_no", "product_id", "batch", "expiry",
	"pack_size", "pack_quantity", "unit_quantity",
	"pack_purchase_price", "unit_purchase_price",
	"pack_sale_price", "unit_sale_price",
	"pack_bonus", "unit_bonus",
	"item_discount_percentage",
	"quantity", "sub_total", "avg_price", "margin",
}

// PurchaseInvoiceRepo implements purchase_invoice.Repository.
type PurchaseInvoiceRepo struct {
	*BaseDocumentRepo[*purchase_invoice.PurchaseInvoice]
}

var _ purchase_invoice.Repository = (*PurchaseInvoiceRepo)(nil)

// NewPurchaseInvoiceRepo creates a purchase invoice repository.
func NewPurchaseInvoiceRepo(txManager *postgres.TxManager) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseInvoicesTable,
			postgres.ExtractDBColumns[purchase_invoice.PurchaseInvoice](),
			func() *purchase_invoice.PurchaseInvoice { return &purchase_invoice.PurchaseInvoice{} },
		),
	}
}

// GetLines retrieves lines for a purchase invoice ordered by line number.
func (r *PurchaseInvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase_invoice.Line, error) {
	q := r.Builder().
		Select(lineItemCols...).
		From(purchaseInvoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase_invoice.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *PurchaseInvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase_invoice.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + purchaseInvoiceLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"document_id"}, lineItemCols...)
	q := r.Builder().
		Insert(purchaseInvoiceLinesTable).
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

// List retrieves purchase invoices with filtering.
func (r *PurchaseInvoiceRepo) List(ctx context.Context, filter purchase_invoice.ListFilter) (domain.ListResult[*purchase_invoice.PurchaseInvoice], error) {
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
			squirrel.ILike{"supplier_invoice_number": searchPattern},
		})
	}

	return r.finishList(ctx, q, filter.ListFilter)
}
