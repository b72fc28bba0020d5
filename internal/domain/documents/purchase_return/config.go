package purchase_return

import "pharmapos/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	NumeratorStrategy = numerator.StrategyStrict

	// NumberPrefix for generated document numbers (PR-2026-00001).
	NumberPrefix = "PR"
)
