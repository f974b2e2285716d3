// Package category provides the Category catalog used to group products.
package category

import (
	"context"

	"storekeeper/internal/core/entity"
)

// Category groups products for navigation and stock reporting.
type Category struct {
	entity.Catalog

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// New creates a new Category with required fields.
func New(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
