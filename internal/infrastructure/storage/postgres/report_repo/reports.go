// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"storekeeper/internal/domain/reports"
	"storekeeper/internal/infrastructure/storage/postgres"
)

// Transactions participate in aggregates while their movements are on
// the register: committed or edited, not draft or deleted.
const activeStatuses = "('committed', 'edited')"

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetSummary aggregates sale/purchase lines and catalog counts.
func (r *ReportRepo) GetSummary(ctx context.Context, filter reports.SummaryFilter) (*reports.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE d.kind = 'sale'), 0) as revenue,
			COALESCE(SUM(l.amount) FILTER (WHERE d.kind = 'purchase'), 0) as spend,
			COALESCE(SUM(l.quantity) FILTER (WHERE d.kind = 'sale'), 0) as total_quantity_sold,
			COALESCE(SUM(l.quantity) FILTER (WHERE d.kind = 'purchase'), 0) as total_quantity_purchased,
			COUNT(DISTINCT d.id) FILTER (WHERE d.kind = 'sale') as sales_count,
			COUNT(DISTINCT d.id) FILTER (WHERE d.kind = 'purchase') as purchases_count
		FROM doc_transactions d
		JOIN doc_transaction_lines l ON l.document_id = d.id
		WHERE d.status IN ` + activeStatuses + `
		  AND d.deletion_mark = false
	`
	args := []any{}
	argIndex := 1

	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND d.date >= $%d", argIndex)
		args = append(args, *filter.FromDate)
		argIndex++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND d.date < $%d", argIndex)
		args = append(args, *filter.ToDate)
		argIndex++
	}

	var summary reports.Summary
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, query, args...).Scan(
		&summary.Revenue, &summary.Spend,
		&summary.TotalQuantitySold, &summary.TotalQuantityPurchased,
		&summary.SalesCount, &summary.PurchasesCount,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate transactions: %w", err)
	}

	countsSQL := `
		SELECT
			(SELECT COUNT(*) FROM cat_products WHERE deletion_mark = false) as product_count,
			(SELECT COUNT(*) FROM cat_parties WHERE deletion_mark = false) as party_count
	`
	err = querier.QueryRow(ctx, countsSQL).Scan(&summary.ProductCount, &summary.PartyCount)
	if err != nil {
		return nil, fmt.Errorf("count catalogs: %w", err)
	}

	return &summary, nil
}

// GetProductStock returns every product with its current balance.
// Products without register rows report zero.
func (r *ReportRepo) GetProductStock(ctx context.Context) ([]reports.ProductStock, error) {
	query := `
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.category_id,
			c.name as category_name,
			COALESCE(b.quantity, 0) as quantity
		FROM cat_products p
		LEFT JOIN reg_stock_balances b ON b.product_id = p.id
		LEFT JOIN cat_categories c ON c.id = p.category_id
		WHERE p.deletion_mark = false
		ORDER BY p.name
	`

	var items []reports.ProductStock
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query); err != nil {
		return nil, fmt.Errorf("product stock: %w", err)
	}

	return items, nil
}

// GetCategoryStock sums balances per category. Products without a
// category group under a NULL category row.
func (r *ReportRepo) GetCategoryStock(ctx context.Context) ([]reports.CategoryStockItem, error) {
	query := `
		SELECT
			p.category_id,
			c.name as category_name,
			COUNT(p.id) as product_count,
			COALESCE(SUM(b.quantity), 0) as quantity
		FROM cat_products p
		LEFT JOIN reg_stock_balances b ON b.product_id = p.id
		LEFT JOIN cat_categories c ON c.id = p.category_id
		WHERE p.deletion_mark = false
		GROUP BY p.category_id, c.name
		ORDER BY c.name NULLS LAST
	`

	var items []reports.CategoryStockItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query); err != nil {
		return nil, fmt.Errorf("category stock: %w", err)
	}

	return items, nil
}

// GetWindowTotals aggregates sale/purchase lines over (from, to].
func (r *ReportRepo) GetWindowTotals(ctx context.Context, from, to time.Time) (reports.WindowTotals, error) {
	var totals reports.WindowTotals

	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE d.kind = 'sale'), 0) as revenue,
			COALESCE(SUM(l.amount) FILTER (WHERE d.kind = 'purchase'), 0) as spend,
			COUNT(DISTINCT d.id) FILTER (WHERE d.kind = 'sale') as sales_count,
			COUNT(DISTINCT d.id) FILTER (WHERE d.kind = 'purchase') as purchases_count,
			COALESCE(SUM(l.quantity) FILTER (WHERE d.kind = 'sale'), 0) as quantity_sold
		FROM doc_transactions d
		JOIN doc_transaction_lines l ON l.document_id = d.id
		WHERE d.status IN ` + activeStatuses + `
		  AND d.deletion_mark = false
		  AND d.date > $1 AND d.date <= $2
	`

	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, query, from, to).Scan(
		&totals.Revenue, &totals.Spend,
		&totals.SalesCount, &totals.PurchasesCount,
		&totals.QuantitySold,
	)
	if err != nil {
		return totals, fmt.Errorf("window totals: %w", err)
	}

	return totals, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
