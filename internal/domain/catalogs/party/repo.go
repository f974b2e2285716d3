package party

import (
	"context"

	"storekeeper/internal/domain"
)

// Repository defines the interface for Party persistence.
type Repository interface {
	domain.CatalogRepository[*Party]

	// FindBySupplierFlag retrieves parties filtered by supplier/customer role.
	FindBySupplierFlag(ctx context.Context, isSupplier bool, filter domain.ListFilter) (domain.ListResult[*Party], error)
}
