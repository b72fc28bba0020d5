// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/reports"
	"pharmapos/internal/infrastructure/storage/postgres"
)

// quantityScale converts scaled bigint register quantities to decimals.
const quantityScale = "10000.0"

// ReportRepo implements reports.Repository. Reports read the materialized
// balance rows and document tables directly; nothing here writes.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)

// GetStockBalanceReport generates the batch-level stock balance report with
// product details, reorder and expiry flags.
func (r *ReportRepo) GetStockBalanceReport(ctx context.Context, filter reports.StockBalanceReportFilter) (*reports.StockBalanceReport, error) {
	query := `
		SELECT
			b.product_id,
			p.code AS product_code,
			p.name AS product_name,
			p.generic_name,
			p.rack_location,
			b.batch,
			b.expiry,
			(b.quantity::numeric / ` + quantityScale + `) AS quantity,
			(COALESCE(t.total_qty, 0)::numeric / ` + quantityScale + `) < p.reorder_level AND p.reorder_level > 0 AS below_reorder,
			b.expiry IS NOT NULL AND b.expiry < NOW() AS expired
		FROM reg_stock_balances b
		JOIN cat_products p ON p.id = b.product_id
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total_qty
			FROM reg_stock_balances
			GROUP BY product_id
		) t ON t.product_id = b.product_id
		WHERE p.deletion_mark = false
	`
	var args []any
	argIndex := 1

	if len(filter.ProductIDs) > 0 {
		placeholders := make([]string, len(filter.ProductIDs))
		for i, pID := range filter.ProductIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, pID)
			argIndex++
		}
		query += fmt.Sprintf(" AND b.product_id IN (%s)", strings.Join(placeholders, ","))
	}

	if filter.Batch != "" {
		query += fmt.Sprintf(" AND b.batch = $%d", argIndex)
		args = append(args, filter.Batch)
		argIndex++
	}

	if filter.ExpiringBefore != nil {
		query += fmt.Sprintf(" AND b.expiry IS NOT NULL AND b.expiry < $%d", argIndex)
		args = append(args, *filter.ExpiringBefore)
		argIndex++
	}

	if filter.ExcludeZero {
		query += " AND b.quantity != 0"
	}

	if filter.BelowReorderOnly {
		query += " AND (COALESCE(t.total_qty, 0)::numeric / " + quantityScale + ") < p.reorder_level AND p.reorder_level > 0"
	}

	query += " ORDER BY p.name, b.expiry NULLS LAST, b.batch"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.StockBalanceReportItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("stock balance report: %w", err)
	}

	totalQuantity := decimal.Zero
	for _, item := range items {
		totalQuantity = totalQuantity.Add(item.Quantity)
	}

	return &reports.StockBalanceReport{
		GeneratedAt:   time.Now().UTC(),
		Items:         items,
		TotalItems:    len(items),
		TotalQuantity: totalQuantity,
	}, nil
}

// GetSalesSummary aggregates posted sale invoices by day or by product.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummaryReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("from_date and to_date are required")
	}

	var selectCols, groupBy, orderBy string
	switch filter.GroupBy {
	case reports.GroupByProduct:
		selectCols = `
			NULL::timestamptz AS date,
			l.product_id::uuid AS product_id,
			p.name AS product_name,`
		groupBy = "l.product_id, p.name"
		orderBy = "p.name"
	default:
		selectCols = `
			date_trunc('day', d.date) AS date,
			NULL::uuid AS product_id,
			'' AS product_name,`
		groupBy = "date_trunc('day', d.date)"
		orderBy = "date"
	}

	query := `
		SELECT ` + selectCols + `
			COUNT(DISTINCT d.id) AS invoice_count,
			COALESCE(SUM(COALESCE(l.quantity, 0)), 0) AS quantity,
			COALESCE(SUM(COALESCE(l.quantity, 0) * COALESCE(l.price, 0)), 0) AS gross_amount,
			COALESCE(SUM(l.item_discount_amount), 0) AS discount_amount,
			COALESCE(SUM(l.sub_total), 0) AS net_amount
		FROM doc_sale_invoices d
		JOIN doc_sale_invoice_lines l ON l.document_id = d.id
		LEFT JOIN cat_products p ON p.id = l.product_id::uuid
		WHERE d.posted = true
		  AND d.deletion_mark = false
		  AND d.date >= $1
		  AND d.date < $2
	`
	args := []any{filter.FromDate, filter.ToDate}
	argIndex := 3

	if len(filter.CustomerIDs) > 0 {
		placeholders := make([]string, len(filter.CustomerIDs))
		for i, cID := range filter.CustomerIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, cID)
			argIndex++
		}
		query += fmt.Sprintf(" AND d.customer_id IN (%s)", strings.Join(placeholders, ","))
	}

	if len(filter.ProductIDs) > 0 {
		placeholders := make([]string, len(filter.ProductIDs))
		for i, pID := range filter.ProductIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, pID)
			argIndex++
		}
		query += fmt.Sprintf(" AND l.product_id::uuid IN (%s)", strings.Join(placeholders, ","))
	}

	query += " GROUP BY " + groupBy + " ORDER BY " + orderBy

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.SalesSummaryItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	report := &reports.SalesSummaryReport{
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		Items:      items,
		TotalItems: len(items),
	}
	for _, item := range items {
		report.TotalQuantity = report.TotalQuantity.Add(item.Quantity)
		report.TotalGross = report.TotalGross.Add(item.GrossAmount)
		report.TotalDiscount = report.TotalDiscount.Add(item.DiscountAmount)
		report.TotalNet = report.TotalNet.Add(item.NetAmount)
	}

	return report, nil
}

// journalSource describes one document table feeding the journal union.
type journalSource struct {
	docType      string
	table        string
	counterparty string // "supplier" or "customer"
}

var journalSources = []journalSource{
	{docType: "PurchaseInvoice", table: "doc_purchase_invoices", counterparty: "supplier"},
	{docType: "PurchaseReturn", table: "doc_purchase_returns", counterparty: "supplier"},
	{docType: "SaleInvoice", table: "doc_sale_invoices", counterparty: "customer"},
	{docType: "SaleReturn", table: "doc_sale_returns", counterparty: "customer"},
}

func journalSourceFor(docType string) *journalSource {
	for i := range journalSources {
		if journalSources[i].docType == docType {
			return &journalSources[i]
		}
	}
	return nil
}

// GetDocumentJournal retrieves documents of all types in one chronological
// journal.
func (r *ReportRepo) GetDocumentJournal(ctx context.Context, filter reports.DocumentJournalFilter) (*reports.DocumentJournal, error) {
	docTypes := filter.DocumentTypes
	if len(docTypes) == 0 {
		for _, src := range journalSources {
			docTypes = append(docTypes, src.docType)
		}
	}

	var unions []string
	var args []any
	argIndex := 1

	addArg := func(v any) string {
		placeholder := fmt.Sprintf("$%d", argIndex)
		args = append(args, v)
		argIndex++
		return placeholder
	}

	for _, docType := range docTypes {
		src := journalSourceFor(docType)
		if src == nil {
			continue
		}

		// Reference filters that cannot match this document family exclude it.
		if src.counterparty == "supplier" && len(filter.CustomerIDs) > 0 {
			continue
		}
		if src.counterparty == "customer" && len(filter.SupplierIDs) > 0 {
			continue
		}

		var q string
		switch src.counterparty {
		case "supplier":
			q = `
				SELECT
					d.id, '` + src.docType + `' AS document_type, d.number, d.date, d.posted,
					d.supplier_id AS counterparty_id,
					COALESCE(cp.name, '') AS counterparty_name,
					d.total_quantity, d.total AS total_amount,
					d.comment, d.deletion_mark, d.created_at, d.updated_at
				FROM ` + src.table + ` d
				LEFT JOIN cat_suppliers cp ON cp.id = d.supplier_id
				WHERE d.deletion_mark = false
			`
			if len(filter.SupplierIDs) > 0 {
				placeholders := make([]string, len(filter.SupplierIDs))
				for i, sID := range filter.SupplierIDs {
					placeholders[i] = addArg(sID)
				}
				q += fmt.Sprintf(" AND d.supplier_id IN (%s)", strings.Join(placeholders, ","))
			}
		case "customer":
			q = `
				SELECT
					d.id, '` + src.docType + `' AS document_type, d.number, d.date, d.posted,
					d.customer_id AS counterparty_id,
					COALESCE(cp.name, '') AS counterparty_name,
					d.total_quantity, d.total AS total_amount,
					d.comment, d.deletion_mark, d.created_at, d.updated_at
				FROM ` + src.table + ` d
				LEFT JOIN cat_customers cp ON cp.id = d.customer_id
				WHERE d.deletion_mark = false
			`
			if len(filter.CustomerIDs) > 0 {
				placeholders := make([]string, len(filter.CustomerIDs))
				for i, cID := range filter.CustomerIDs {
					placeholders[i] = addArg(cID)
				}
				q += fmt.Sprintf(" AND d.customer_id IN (%s)", strings.Join(placeholders, ","))
			}
		}

		if filter.FromDate != nil {
			q += " AND d.date >= " + addArg(*filter.FromDate)
		}
		if filter.ToDate != nil {
			q += " AND d.date < " + addArg(*filter.ToDate)
		}
		if filter.Posted != nil {
			q += " AND d.posted = " + addArg(*filter.Posted)
		}
		if filter.NumberContains != "" {
			q += " AND d.number ILIKE " + addArg("%"+filter.NumberContains+"%")
		}

		unions = append(unions, q)
	}

	if len(unions) == 0 {
		return &reports.DocumentJournal{
			Items:  []reports.DocumentJournalItem{},
			Limit:  filter.Limit,
			Offset: filter.Offset,
		}, nil
	}

	unionQuery := strings.Join(unions, " UNION ALL ")

	querier := r.txManager.GetQuerier(ctx)

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM (" + unionQuery + ") j"
	if err := querier.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("journal count: %w", err)
	}

	query := unionQuery + " ORDER BY " + journalOrderBy(filter.SortBy, filter.SortOrder)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.DocumentJournalItem
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("document journal: %w", err)
	}

	return &reports.DocumentJournal{
		Items:      items,
		TotalCount: totalCount,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// journalOrderBy maps the sort request to a whitelisted column.
func journalOrderBy(sortBy, sortOrder string) string {
	column := "date"
	switch sortBy {
	case "number":
		column = "number"
	case "type":
		column = "document_type"
	case "amount":
		column = "total_amount"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	if column == "date" {
		return "date " + direction + ", number"
	}
	return column + " " + direction
}

// GetDocumentTypeSummary returns document counts and totals by type.
func (r *ReportRepo) GetDocumentTypeSummary(ctx context.Context, filter reports.DocumentJournalFilter) ([]reports.DocumentTypeSummary, error) {
	docTypes := filter.DocumentTypes
	if len(docTypes) == 0 {
		for _, src := range journalSources {
			docTypes = append(docTypes, src.docType)
		}
	}

	querier := r.txManager.GetQuerier(ctx)
	var result []reports.DocumentTypeSummary

	for _, docType := range docTypes {
		src := journalSourceFor(docType)
		if src == nil {
			continue
		}

		query := `
			SELECT
				COUNT(*) AS count,
				COUNT(*) FILTER (WHERE posted = true) AS posted_count,
				COALESCE(SUM(total_quantity), 0) AS total_quantity,
				COALESCE(SUM(total), 0) AS total_amount
			FROM ` + src.table + `
			WHERE deletion_mark = false
		`
		var args []any
		argIndex := 1

		if filter.FromDate != nil {
			query += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			query += fmt.Sprintf(" AND date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}

		summary := reports.DocumentTypeSummary{DocumentType: docType}
		err := querier.QueryRow(ctx, query, args...).Scan(
			&summary.Count,
			&summary.PostedCount,
			&summary.TotalQuantity,
			&summary.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("document type summary for %s: %w", docType, err)
		}

		result = append(result, summary)
	}

	return result, nil
}

// GetReceipt loads the printable payload for a sale invoice.
func (r *ReportRepo) GetReceipt(ctx context.Context, saleInvoiceID id.ID) (*reports.Receipt, error) {
	querier := r.txManager.GetQuerier(ctx)

	headerQuery := `
		SELECT
			d.number,
			d.date,
			COALESCE(c.name, '') AS customer_name,
			d.gross_amount,
			d.item_discount,
			COALESCE(d.discount_amount, 0) AS discount_amount,
			COALESCE(d.tax_amount, 0) AS tax_amount,
			d.total
		FROM doc_sale_invoices d
		LEFT JOIN cat_customers c ON c.id = d.customer_id
		WHERE d.id = $1 AND d.deletion_mark = false
	`

	var receipt reports.Receipt
	if err := pgxscan.Get(ctx, querier, &receipt, headerQuery, saleInvoiceID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale invoice", saleInvoiceID.String())
		}
		return nil, fmt.Errorf("receipt header: %w", err)
	}

	linesQuery := `
		SELECT
			l.line_no,
			COALESCE(p.name, l.product_id) AS product_name,
			l.batch,
			COALESCE(l.quantity, 0) AS quantity,
			COALESCE(l.price, 0) AS price,
			l.item_discount_amount AS discount_amount,
			l.sub_total
		FROM doc_sale_invoice_lines l
		LEFT JOIN cat_products p ON p.id = l.product_id::uuid
		WHERE l.document_id = $1
		ORDER BY l.line_no
	`

	if err := pgxscan.Select(ctx, querier, &receipt.Lines, linesQuery, saleInvoiceID); err != nil {
		return nil, fmt.Errorf("receipt lines: %w", err)
	}

	return &receipt, nil
}
