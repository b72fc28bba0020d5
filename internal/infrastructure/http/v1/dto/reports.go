package dto

import (
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/domain/reports"
)

// Report results from the domain layer are already wire-shaped, so report
// endpoints return them directly. Only the query-binding requests live here.

// --- Stock Balance Report ---

// StockBalanceReportRequest represents request for the stock balance report.
type StockBalanceReportRequest struct {
	ProductIDs       []string `form:"productId"`
	Batch            string   `form:"batch"`
	ExpiringBefore   *string  `form:"expiringBefore"`
	BelowReorderOnly bool     `form:"belowReorderOnly"`
	ExcludeZero      bool     `form:"excludeZero"`
	Limit            int      `form:"limit"`
	Offset           int      `form:"offset"`
}

// ToFilter builds the domain filter. Unparseable IDs and dates are skipped.
func (r *StockBalanceReportRequest) ToFilter() reports.StockBalanceReportFilter {
	filter := reports.StockBalanceReportFilter{
		ProductIDs:       parseIDs(r.ProductIDs),
		Batch:            r.Batch,
		BelowReorderOnly: r.BelowReorderOnly,
		ExcludeZero:      r.ExcludeZero,
		Limit:            r.Limit,
		Offset:           r.Offset,
	}
	if r.ExpiringBefore != nil {
		if t, err := time.Parse(time.RFC3339, *r.ExpiringBefore); err == nil {
			filter.ExpiringBefore = &t
		}
	}
	return filter
}

// --- Sales Summary Report ---

// SalesSummaryRequest represents request for the sales summary report.
type SalesSummaryRequest struct {
	FromDate    string   `form:"fromDate" binding:"required"`
	ToDate      string   `form:"toDate" binding:"required"`
	GroupBy     string   `form:"groupBy"`
	CustomerIDs []string `form:"customerId"`
	ProductIDs  []string `form:"productId"`
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
}

// ToFilter builds the domain filter. Date parsing failures leave zero values
// which the service rejects.
func (r *SalesSummaryRequest) ToFilter() reports.SalesSummaryFilter {
	filter := reports.SalesSummaryFilter{
		GroupBy:     reports.SalesSummaryGroupBy(r.GroupBy),
		CustomerIDs: parseIDs(r.CustomerIDs),
		ProductIDs:  parseIDs(r.ProductIDs),
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
	if t, err := time.Parse(time.RFC3339, r.FromDate); err == nil {
		filter.FromDate = t
	}
	if t, err := time.Parse(time.RFC3339, r.ToDate); err == nil {
		filter.ToDate = t
	}
	return filter
}

// --- Document Journal ---

// DocumentJournalRequest represents request for the document journal.
type DocumentJournalRequest struct {
	FromDate       *string  `form:"fromDate"`
	ToDate         *string  `form:"toDate"`
	DocumentTypes  []string `form:"documentType"`
	Posted         *bool    `form:"posted"`
	NumberContains string   `form:"number"`
	SupplierIDs    []string `form:"supplierId"`
	CustomerIDs    []string `form:"customerId"`
	SortBy         string   `form:"sortBy"`
	SortOrder      string   `form:"sortOrder"`
	Limit          int      `form:"limit"`
	Offset         int      `form:"offset"`
}

// ToFilter builds the domain filter.
func (r *DocumentJournalRequest) ToFilter() reports.DocumentJournalFilter {
	filter := reports.DocumentJournalFilter{
		DocumentTypes:  r.DocumentTypes,
		Posted:         r.Posted,
		NumberContains: r.NumberContains,
		SupplierIDs:    parseIDs(r.SupplierIDs),
		CustomerIDs:    parseIDs(r.CustomerIDs),
		SortBy:         r.SortBy,
		SortOrder:      r.SortOrder,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
	if r.FromDate != nil {
		if t, err := time.Parse(time.RFC3339, *r.FromDate); err == nil {
			filter.FromDate = &t
		}
	}
	if r.ToDate != nil {
		if t, err := time.Parse(time.RFC3339, *r.ToDate); err == nil {
			filter.ToDate = &t
		}
	}
	return filter
}

// parseIDs converts string IDs, skipping invalid ones.
func parseIDs(raw []string) []id.ID {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		if parsed, err := id.Parse(s); err == nil {
			ids = append(ids, parsed)
		}
	}
	return ids
}
