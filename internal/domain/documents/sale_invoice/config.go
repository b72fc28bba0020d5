package sale_invoice

import "pharmapos/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	// Receipts are fiscal documents, numbering must be gap-free.
	NumeratorStrategy = numerator.StrategyStrict

	// NumberPrefix for generated document numbers (SI-2026-00001).
	NumberPrefix = "SI"
)
