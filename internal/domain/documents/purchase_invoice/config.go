package purchase_invoice

import "pharmapos/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	// Purchase invoices are primary accounting documents, so numbering is
	// strictly sequential.
	NumeratorStrategy = numerator.StrategyStrict

	// NumberPrefix for generated document numbers (PI-2026-00001).
	NumberPrefix = "PI"
)
