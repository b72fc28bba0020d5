package reports

import (
	"context"
	"fmt"
	"time"

	"pharmapos/internal/core/id"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStockBalance generates the stock balance report.
func (s *Service) GetStockBalance(ctx context.Context, filter StockBalanceReportFilter) (*StockBalanceReport, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetStockBalanceReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get stock balance report: %w", err)
	}

	return report, nil
}

// GetExpiringStock is the stock balance report restricted to batches
// expiring before the given date.
func (s *Service) GetExpiringStock(ctx context.Context, before time.Time, limit, offset int) (*StockBalanceReport, error) {
	return s.GetStockBalance(ctx, StockBalanceReportFilter{
		ExpiringBefore: &before,
		ExcludeZero:    true,
		Limit:          limit,
		Offset:         offset,
	})
}

// GetSalesSummary generates the sales summary report for a period.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error) {
	// Validate required dates
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, fmt.Errorf("fromDate and toDate are required")
	}

	if filter.FromDate.After(filter.ToDate) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	if filter.GroupBy == "" {
		filter.GroupBy = GroupByDay
	}

	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetSalesSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}

	return report, nil
}

// GetDocumentJournal returns the document journal.
func (s *Service) GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	// Default sort
	if filter.SortBy == "" {
		filter.SortBy = "date"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	journal, err := s.repo.GetDocumentJournal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get document journal: %w", err)
	}

	// Get summary on the first page only
	if filter.Offset == 0 {
		summary, err := s.repo.GetDocumentTypeSummary(ctx, filter)
		if err == nil {
			journal.Summary = summary
		}
	}

	return journal, nil
}

// GetReceipt returns the printable payload for a sale invoice.
func (s *Service) GetReceipt(ctx context.Context, saleInvoiceID id.ID) (*Receipt, error) {
	receipt, err := s.repo.GetReceipt(ctx, saleInvoiceID)
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
