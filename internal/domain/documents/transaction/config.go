package transaction

import "storekeeper/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for transactions.
	// Sales and purchases are primary accounting documents, so we use
	// Strict strategy (sequential, no gaps).
	NumeratorStrategy = numerator.StrategyStrict
)

// numberPrefix returns the document number prefix for a kind.
func numberPrefix(kind Kind) string {
	if kind == KindSale {
		return "SAL"
	}
	return "PUR"
}
