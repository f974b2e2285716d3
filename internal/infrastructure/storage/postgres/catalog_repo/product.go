package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"storekeeper/internal/core/id"
	"storekeeper/internal/domain"
	"storekeeper/internal/domain/catalogs/product"
	"storekeeper/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// MissingIDs returns the subset of ids without an existing, non-deleted
// product row. Called inside the posting transaction to verify line
// references.
func (r *ProductRepo) MissingIDs(ctx context.Context, ids []id.ID) ([]id.ID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := r.Builder().
		Select("id").
		From(productTable).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing products: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[id.ID])
	if err != nil {
		return nil, fmt.Errorf("collect product ids: %w", err)
	}

	foundSet := make(map[id.ID]struct{}, len(found))
	for _, pid := range found {
		foundSet[pid] = struct{}{}
	}

	var missing []id.ID
	for _, pid := range ids {
		if _, ok := foundSet[pid]; !ok {
			missing = append(missing, pid)
		}
	}

	return missing, nil
}

// FindByCategory retrieves products belonging to a category.
func (r *ProductRepo) FindByCategory(ctx context.Context, categoryID id.ID, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"category_id": categoryID})

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	return r.findPage(ctx, q, filter)
}

// Ensure interface compliance.
var _ product.Repository = (*ProductRepo)(nil)
