// Package product provides the Product catalog.
// A product's stock quantity is NOT stored here - it lives in the stock
// register and is mutated only through document posting.
package product

import (
	"context"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

// Product represents a catalog item available for sale or purchase.
type Product struct {
	entity.Catalog

	// CategoryID is the reference to the owning category
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// SalePrice is the default selling price per unit
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// PurchasePrice is the default acquisition cost per unit
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// ImageURL is the product image URL (filled by enrichment, may be empty)
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
}

// New creates a new Product with required fields.
func New(code, name string) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(code, name),
		SalePrice:     types.ZeroMoney(),
		PurchasePrice: types.ZeroMoney(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice")
	}

	return nil
}

// Margin returns salePrice - purchasePrice per unit.
func (p *Product) Margin() types.Money {
	return p.SalePrice.Sub(p.PurchasePrice)
}
