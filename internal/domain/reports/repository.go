package reports

import (
	"context"

	"pharmapos/internal/core/id"
)

// Repository defines report data access interface.
type Repository interface {
	// Stock
	GetStockBalanceReport(ctx context.Context, filter StockBalanceReportFilter) (*StockBalanceReport, error)

	// Sales
	GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error)

	// Document journal
	GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error)
	GetDocumentTypeSummary(ctx context.Context, filter DocumentJournalFilter) ([]DocumentTypeSummary, error)

	// Receipt payload for a sale invoice
	GetReceipt(ctx context.Context, saleInvoiceID id.ID) (*Receipt, error)
}
