package reports

import (
	"context"
	"fmt"
	"time"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/types"
)

// Service provides report generation operations.
type Service struct {
	repo       Repository
	thresholds Thresholds
}

// NewService creates a new reports service.
func NewService(repo Repository, thresholds Thresholds) *Service {
	return &Service{
		repo:       repo,
		thresholds: thresholds,
	}
}

// GetSummary aggregates revenue, spend, quantities, and counts.
func (s *Service) GetSummary(ctx context.Context, filter SummaryFilter) (*Summary, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate").
			WithDetail("field", "fromDate")
	}

	summary, err := s.repo.GetSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	return summary, nil
}

// GetStockHealth classifies every product into out/low/medium/high.
func (s *Service) GetStockHealth(ctx context.Context) (*StockHealthReport, error) {
	stock, err := s.repo.GetProductStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("get product stock: %w", err)
	}

	report := &StockHealthReport{
		Items:  make([]StockHealthItem, 0, len(stock)),
		Counts: make(map[StockLevel]int64, 4),
	}

	for _, ps := range stock {
		level := s.thresholds.Classify(ps.Quantity)
		report.Items = append(report.Items, StockHealthItem{
			ProductStock: ps,
			Level:        level,
		})
		report.Counts[level]++
	}

	return report, nil
}

// GetCategoryStock sums register quantities per category.
func (s *Service) GetCategoryStock(ctx context.Context) ([]CategoryStockItem, error) {
	items, err := s.repo.GetCategoryStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("get category stock: %w", err)
	}
	return items, nil
}

// GetGrowth compares aggregates over a recent window against the
// equal-length prior window.
func (s *Service) GetGrowth(ctx context.Context, filter GrowthFilter) (*GrowthReport, error) {
	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	window := filter.Window
	if window <= 0 {
		window = 24 * time.Hour
	}

	currentFrom := asOf.Add(-window)
	previousFrom := currentFrom.Add(-window)

	current, err := s.repo.GetWindowTotals(ctx, currentFrom, asOf)
	if err != nil {
		return nil, fmt.Errorf("get current window: %w", err)
	}

	previous, err := s.repo.GetWindowTotals(ctx, previousFrom, currentFrom)
	if err != nil {
		return nil, fmt.Errorf("get previous window: %w", err)
	}

	return &GrowthReport{
		Window:       window,
		CurrentFrom:  currentFrom,
		CurrentTo:    asOf,
		PreviousFrom: previousFrom,
		PreviousTo:   currentFrom,
		Revenue: GrowthFigure{
			Current:       current.Revenue,
			Previous:      previous.Revenue,
			GrowthPercent: growthPercent(current.Revenue, previous.Revenue),
		},
		Spend: GrowthFigure{
			Current:       current.Spend,
			Previous:      previous.Spend,
			GrowthPercent: growthPercent(current.Spend, previous.Spend),
		},
		CurrentSalesCount:  current.SalesCount,
		PreviousSalesCount: previous.SalesCount,
	}, nil
}

// growthPercent computes (current−previous)/previous×100.
// A zero previous window yields 100 when there is any current activity,
// 0 otherwise.
func growthPercent(current, previous types.Money) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(types.NewMoney(100)).Float64()
	return pct
}
