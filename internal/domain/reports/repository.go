package reports

import (
	"context"
	"time"
)

// Repository defines report data access. All queries are read-only and
// see only committed transaction state.
type Repository interface {
	// GetSummary aggregates sale/purchase lines and catalog counts.
	GetSummary(ctx context.Context, filter SummaryFilter) (*Summary, error)

	// GetProductStock returns every product with its current balance
	// (zero when the product has no register rows).
	GetProductStock(ctx context.Context) ([]ProductStock, error)

	// GetCategoryStock sums balances per category.
	GetCategoryStock(ctx context.Context) ([]CategoryStockItem, error)

	// GetWindowTotals aggregates sale/purchase lines over (from, to].
	GetWindowTotals(ctx context.Context, from, to time.Time) (WindowTotals, error)
}
