// Package reports provides the read-only aggregation engine: revenue,
// spend, stock health, and growth figures derived from committed
// transactions and current register state. Nothing here mutates catalog
// or document state, so reports are safe to recompute concurrently with
// posting.
package reports

import (
	"time"

	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

// --- Summary ---

// SummaryFilter limits the summary to a business-date range.
// Nil bounds mean all time.
type SummaryFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// Summary aggregates committed sale and purchase transactions.
type Summary struct {
	// Revenue = Σ quantity × unitPrice over sale lines
	Revenue types.Money `json:"revenue"`
	// Spend = Σ quantity × unitPrice over purchase lines
	Spend types.Money `json:"spend"`

	TotalQuantitySold      types.Quantity `json:"totalQuantitySold"`
	TotalQuantityPurchased types.Quantity `json:"totalQuantityPurchased"`

	SalesCount     int64 `json:"salesCount"`
	PurchasesCount int64 `json:"purchasesCount"`
	ProductCount   int64 `json:"productCount"`
	PartyCount     int64 `json:"partyCount"`
}

// --- Stock health ---

// ProductStock is one product's current register balance with catalog
// context, as read by the report repository.
type ProductStock struct {
	ProductID    id.ID          `db:"product_id" json:"productId"`
	ProductName  string         `db:"product_name" json:"productName"`
	CategoryID   *id.ID         `db:"category_id" json:"categoryId,omitempty"`
	CategoryName *string        `db:"category_name" json:"categoryName,omitempty"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
}

// StockHealthItem is a classified product row.
type StockHealthItem struct {
	ProductStock
	Level StockLevel `json:"level"`
}

// StockHealthReport classifies every product into out/low/medium/high.
type StockHealthReport struct {
	Items  []StockHealthItem    `json:"items"`
	Counts map[StockLevel]int64 `json:"counts"`
}

// --- Category stock ---

// CategoryStockItem sums register quantities per category.
type CategoryStockItem struct {
	CategoryID   *id.ID         `db:"category_id" json:"categoryId,omitempty"`
	CategoryName *string        `db:"category_name" json:"categoryName,omitempty"`
	ProductCount int64          `db:"product_count" json:"productCount"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
}

// --- Growth ---

// GrowthFilter configures the comparison windows. The current window is
// (AsOf-Window, AsOf]; the previous window is the equal-length span
// immediately before it.
type GrowthFilter struct {
	// AsOf defaults to now
	AsOf time.Time
	// Window defaults to 24h; the windowing policy is configuration,
	// not a constant
	Window time.Duration
}

// WindowTotals holds the aggregates of one window.
type WindowTotals struct {
	Revenue        types.Money    `json:"revenue"`
	Spend          types.Money    `json:"spend"`
	SalesCount     int64          `json:"salesCount"`
	PurchasesCount int64          `json:"purchasesCount"`
	QuantitySold   types.Quantity `json:"quantitySold"`
}

// GrowthFigure compares one metric across the two windows.
type GrowthFigure struct {
	Current       types.Money `json:"current"`
	Previous      types.Money `json:"previous"`
	GrowthPercent float64     `json:"growthPercent"`
}

// GrowthReport compares the recent window against the prior window.
type GrowthReport struct {
	Window       time.Duration `json:"windowSeconds"`
	CurrentFrom  time.Time     `json:"currentFrom"`
	CurrentTo    time.Time     `json:"currentTo"`
	PreviousFrom time.Time     `json:"previousFrom"`
	PreviousTo   time.Time     `json:"previousTo"`

	Revenue GrowthFigure `json:"revenue"`
	Spend   GrowthFigure `json:"spend"`

	CurrentSalesCount  int64 `json:"currentSalesCount"`
	PreviousSalesCount int64 `json:"previousSalesCount"`
}
