package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

// fakeRepo serves canned report data.
type fakeRepo struct {
	summary      *Summary
	productStock []ProductStock
	// windows maps "from|to" to its totals so tests can assert the
	// service computes window boundaries correctly.
	windows map[string]WindowTotals
}

func windowKey(from, to time.Time) string {
	return from.UTC().Format(time.RFC3339) + "|" + to.UTC().Format(time.RFC3339)
}

func (r *fakeRepo) GetSummary(_ context.Context, _ SummaryFilter) (*Summary, error) {
	return r.summary, nil
}

func (r *fakeRepo) GetProductStock(_ context.Context) ([]ProductStock, error) {
	return r.productStock, nil
}

func (r *fakeRepo) GetCategoryStock(_ context.Context) ([]CategoryStockItem, error) {
	return nil, nil
}

func (r *fakeRepo) GetWindowTotals(_ context.Context, from, to time.Time) (WindowTotals, error) {
	return r.windows[windowKey(from, to)], nil
}

func TestClassify(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		quantity types.Quantity
		want     StockLevel
	}{
		{-1, LevelOut},
		{0, LevelOut},
		{1, LevelLow},
		{5, LevelLow},
		{10, LevelLow},
		{11, LevelMedium},
		{25, LevelMedium},
		{30, LevelMedium},
		{31, LevelHigh},
		{100, LevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholds.Classify(tt.quantity),
			"quantity %d", tt.quantity)
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	thresholds := Thresholds{LowMax: 5, MediumMax: 15}

	assert.Equal(t, LevelLow, thresholds.Classify(5))
	assert.Equal(t, LevelMedium, thresholds.Classify(6))
	assert.Equal(t, LevelMedium, thresholds.Classify(15))
	assert.Equal(t, LevelHigh, thresholds.Classify(16))
}

func TestGetSummary_ValidatesDateRange(t *testing.T) {
	svc := NewService(&fakeRepo{summary: &Summary{}}, DefaultThresholds())

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)

	_, err := svc.GetSummary(context.Background(), SummaryFilter{FromDate: &from, ToDate: &to})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGetStockHealth_ClassifiesAndCounts(t *testing.T) {
	repo := &fakeRepo{
		productStock: []ProductStock{
			{ProductID: id.New(), ProductName: "Out", Quantity: 0},
			{ProductID: id.New(), ProductName: "Low", Quantity: 4},
			{ProductID: id.New(), ProductName: "Also low", Quantity: 10},
			{ProductID: id.New(), ProductName: "Medium", Quantity: 20},
			{ProductID: id.New(), ProductName: "High", Quantity: 500},
		},
	}
	svc := NewService(repo, DefaultThresholds())

	report, err := svc.GetStockHealth(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Items, 5)

	assert.Equal(t, LevelOut, report.Items[0].Level)
	assert.Equal(t, LevelLow, report.Items[1].Level)
	assert.Equal(t, LevelLow, report.Items[2].Level)
	assert.Equal(t, LevelMedium, report.Items[3].Level)
	assert.Equal(t, LevelHigh, report.Items[4].Level)

	assert.Equal(t, int64(1), report.Counts[LevelOut])
	assert.Equal(t, int64(2), report.Counts[LevelLow])
	assert.Equal(t, int64(1), report.Counts[LevelMedium])
	assert.Equal(t, int64(1), report.Counts[LevelHigh])
}

func TestGetGrowth_WindowBoundaries(t *testing.T) {
	asOf := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	window := 48 * time.Hour

	currentFrom := asOf.Add(-window)
	previousFrom := currentFrom.Add(-window)

	repo := &fakeRepo{
		windows: map[string]WindowTotals{
			windowKey(currentFrom, asOf): {
				Revenue:    types.NewMoney(300),
				Spend:      types.NewMoney(50),
				SalesCount: 3,
			},
			windowKey(previousFrom, currentFrom): {
				Revenue:    types.NewMoney(200),
				Spend:      types.NewMoney(100),
				SalesCount: 2,
			},
		},
	}
	svc := NewService(repo, DefaultThresholds())

	report, err := svc.GetGrowth(context.Background(), GrowthFilter{AsOf: asOf, Window: window})
	require.NoError(t, err)

	assert.Equal(t, window, report.Window)
	assert.Equal(t, currentFrom, report.CurrentFrom)
	assert.Equal(t, asOf, report.CurrentTo)
	assert.Equal(t, previousFrom, report.PreviousFrom)
	assert.Equal(t, currentFrom, report.PreviousTo)

	assert.True(t, report.Revenue.Current.Equal(types.NewMoney(300)))
	assert.InDelta(t, 50.0, report.Revenue.GrowthPercent, 0.001)
	assert.InDelta(t, -50.0, report.Spend.GrowthPercent, 0.001)
	assert.Equal(t, int64(3), report.CurrentSalesCount)
	assert.Equal(t, int64(2), report.PreviousSalesCount)
}

func TestGetGrowth_Defaults(t *testing.T) {
	repo := &fakeRepo{windows: map[string]WindowTotals{}}
	svc := NewService(repo, DefaultThresholds())

	report, err := svc.GetGrowth(context.Background(), GrowthFilter{})
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, report.Window)
	assert.WithinDuration(t, time.Now().UTC(), report.CurrentTo, 5*time.Second)
	assert.Equal(t, 24*time.Hour, report.CurrentTo.Sub(report.CurrentFrom))
}

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"from zero with activity", 75, 0, 100},
		{"from zero without activity", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := growthPercent(types.NewMoney(tt.current), types.NewMoney(tt.previous))
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
