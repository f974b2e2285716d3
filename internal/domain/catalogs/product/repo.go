package product

import (
	"context"

	"storekeeper/internal/core/id"
	"storekeeper/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetForUpdate retrieves product with row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// MissingIDs returns the subset of ids that do not reference an
	// existing, non-deleted product. Used by document posting to verify
	// line references at commit time.
	MissingIDs(ctx context.Context, ids []id.ID) ([]id.ID, error)

	// FindByCategory retrieves products belonging to a category.
	FindByCategory(ctx context.Context, categoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
