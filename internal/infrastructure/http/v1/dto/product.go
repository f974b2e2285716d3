package dto

import (
	"encoding/base64"
	"fmt"

	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// ImageRequest carries an optional base64-encoded product image.
type ImageRequest struct {
	Data        string `json:"data" binding:"required"`
	ContentType string `json:"contentType,omitempty"`
}

// ToPayload decodes the base64 image data.
func (r *ImageRequest) ToPayload() (*product.ImagePayload, error) {
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &product.ImagePayload{Data: data, ContentType: contentType}, nil
}

type CreateProductRequest struct {
	Code          string        `json:"code,omitempty"`
	Name          string        `json:"name" binding:"required"`
	CategoryID    *string       `json:"categoryId,omitempty" binding:"omitempty,uuid"`
	SalePrice     float64       `json:"salePrice" binding:"gte=0"`
	PurchasePrice float64       `json:"purchasePrice" binding:"gte=0"`
	Description   *string       `json:"description,omitempty"`
	Image         *ImageRequest `json:"image,omitempty"`
}

func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.New(r.Code, r.Name)
	item.SalePrice = types.NewMoney(r.SalePrice)
	item.PurchasePrice = types.NewMoney(r.PurchasePrice)
	item.Description = r.Description

	if r.CategoryID != nil {
		categoryID, err := id.Parse(*r.CategoryID)
		if err == nil {
			item.CategoryID = &categoryID
		}
	}

	return item
}

type UpdateProductRequest struct {
	Code          *string  `json:"code,omitempty"`
	Name          *string  `json:"name,omitempty"`
	CategoryID    *string  `json:"categoryId,omitempty" binding:"omitempty,uuid"`
	SalePrice     *float64 `json:"salePrice,omitempty" binding:"omitempty,gte=0"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty" binding:"omitempty,gte=0"`
	Description   *string  `json:"description,omitempty"`
	Version       int      `json:"version" binding:"required,min=1"`
}

func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	if r.Code != nil {
		item.Code = *r.Code
	}
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.CategoryID != nil {
		categoryID, err := id.Parse(*r.CategoryID)
		if err == nil {
			item.CategoryID = &categoryID
		}
	}
	if r.SalePrice != nil {
		item.SalePrice = types.NewMoney(*r.SalePrice)
	}
	if r.PurchasePrice != nil {
		item.PurchasePrice = types.NewMoney(*r.PurchasePrice)
	}
	if r.Description != nil {
		item.Description = r.Description
	}
	item.Version = r.Version
}

// --- Response DTOs ---

type ProductResponse struct {
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	CategoryID    *string     `json:"categoryId,omitempty"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
	Description   *string     `json:"description,omitempty"`
	ImageURL      *string     `json:"imageUrl,omitempty"`
	DeletionMark  bool        `json:"deletionMark,omitempty"`
	Version       int         `json:"version"`

	// Warning reports non-fatal enrichment problems (image upload)
	Warning string `json:"warning,omitempty"`
}

func FromProduct(item *product.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:            item.ID.String(),
		Code:          item.Code,
		Name:          item.Name,
		SalePrice:     item.SalePrice,
		PurchasePrice: item.PurchasePrice,
		Description:   item.Description,
		ImageURL:      item.ImageURL,
		DeletionMark:  item.DeletionMark,
		Version:       item.Version,
	}

	if item.CategoryID != nil {
		categoryID := item.CategoryID.String()
		resp.CategoryID = &categoryID
	}

	return resp
}

func FromProductList(items []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromProduct(item))
	}
	return out
}
