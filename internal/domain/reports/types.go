// Package reports provides report generation services.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/id"
)

// --- Stock Balance Report ---

// StockBalanceReportFilter defines filter for the stock balance report.
type StockBalanceReportFilter struct {
	// Filters
	ProductIDs []id.ID
	Batch      string

	// ExpiringBefore keeps only batches expiring before the given date
	ExpiringBefore *time.Time

	// BelowReorderOnly keeps only products whose total stock is below the
	// catalog reorder level
	BelowReorderOnly bool

	// Exclude zero balances
	ExcludeZero bool

	// Pagination
	Limit  int
	Offset int
}

// StockBalanceReportItem represents a single row in the stock balance report.
// One row per product batch.
type StockBalanceReportItem struct {
	ProductID    id.ID      `json:"productId"`
	ProductCode  string     `json:"productCode"`
	ProductName  string     `json:"productName"`
	GenericName  string     `json:"genericName,omitempty"`
	RackLocation string     `json:"rackLocation,omitempty"`
	Batch        string     `json:"batch"`
	Expiry       *time.Time `json:"expiry,omitempty"`

	Quantity decimal.Decimal `json:"quantity"`

	// BelowReorder is set when the product's total stock (all batches) is
	// below its reorder level
	BelowReorder bool `json:"belowReorder"`

	// Expired is set when the batch expiry has passed
	Expired bool `json:"expired"`
}

// StockBalanceReport represents the full stock balance report.
type StockBalanceReport struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Items       []StockBalanceReportItem `json:"items"`
	TotalItems  int                      `json:"totalItems"`

	// Summary
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// --- Sales Summary Report ---

// SalesSummaryGroupBy selects the aggregation axis.
type SalesSummaryGroupBy string

const (
	GroupByDay     SalesSummaryGroupBy = "day"
	GroupByProduct SalesSummaryGroupBy = "product"
)

// SalesSummaryFilter defines filter for the sales summary report.
type SalesSummaryFilter struct {
	// Period (required)
	FromDate time.Time
	ToDate   time.Time

	GroupBy SalesSummaryGroupBy

	// Filters
	CustomerIDs []id.ID
	ProductIDs  []id.ID

	// Pagination
	Limit  int
	Offset int
}

// SalesSummaryItem represents one aggregated row. Date is set when grouping
// by day, ProductID/ProductName when grouping by product.
type SalesSummaryItem struct {
	Date        *time.Time `json:"date,omitempty"`
	ProductID   *id.ID     `json:"productId,omitempty"`
	ProductName string     `json:"productName,omitempty"`

	InvoiceCount   int             `json:"invoiceCount"`
	Quantity       decimal.Decimal `json:"quantity"`
	GrossAmount    decimal.Decimal `json:"grossAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"`
}

// SalesSummaryReport represents the full sales summary.
type SalesSummaryReport struct {
	FromDate   time.Time          `json:"fromDate"`
	ToDate     time.Time          `json:"toDate"`
	Items      []SalesSummaryItem `json:"items"`
	TotalItems int                `json:"totalItems"`

	// Summary totals
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalGross    decimal.Decimal `json:"totalGross"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalNet      decimal.Decimal `json:"totalNet"`
}

// --- Document Journal ---

// DocumentJournalFilter defines filter for the document journal.
type DocumentJournalFilter struct {
	// Period
	FromDate *time.Time
	ToDate   *time.Time

	// Document types filter ("PurchaseInvoice", "SaleInvoice", ...)
	DocumentTypes []string

	// Status filter
	Posted *bool

	// Search by number
	NumberContains string

	// Filters by references
	SupplierIDs []id.ID
	CustomerIDs []id.ID

	// Sorting
	SortBy    string // "date", "number", "type", "amount"
	SortOrder string // "asc", "desc"

	// Pagination
	Limit  int
	Offset int
}

// DocumentJournalItem represents a document in the journal.
type DocumentJournalItem struct {
	ID           id.ID     `json:"id"`
	DocumentType string    `json:"documentType"`
	Number       string    `json:"number"`
	Date         time.Time `json:"date"`
	Posted       bool      `json:"posted"`

	// Counterparty info (supplier or customer depending on document type)
	CounterpartyID   *id.ID `json:"counterpartyId,omitempty"`
	CounterpartyName string `json:"counterpartyName,omitempty"`

	// Amounts
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`

	Comment      string    `json:"comment,omitempty"`
	DeletionMark bool      `json:"deletionMark"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DocumentJournal represents the document journal result.
type DocumentJournal struct {
	Items      []DocumentJournalItem `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`

	// Summary by document type
	Summary []DocumentTypeSummary `json:"summary,omitempty"`
}

// DocumentTypeSummary provides count and totals by document type.
type DocumentTypeSummary struct {
	DocumentType  string          `json:"documentType"`
	Count         int             `json:"count"`
	PostedCount   int             `json:"postedCount"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// --- Receipt Payload ---

// ReceiptLine is one printable receipt line. Data only; layout is up to the
// printing client.
type ReceiptLine struct {
	LineNo         int             `json:"lineNo"`
	ProductName    string          `json:"productName"`
	Batch          string          `json:"batch,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	SubTotal       decimal.Decimal `json:"subTotal"`
}

// Receipt is the printable payload for a posted sale invoice.
type Receipt struct {
	Number       string        `json:"number"`
	Date         time.Time     `json:"date"`
	CustomerName string        `json:"customerName,omitempty"`
	Lines        []ReceiptLine `json:"lines"`

	GrossAmount    decimal.Decimal `json:"grossAmount"`
	ItemDiscount   decimal.Decimal `json:"itemDiscount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}
