package dto

import (
	"storekeeper/internal/domain/catalogs/category"
)

// --- Request DTOs ---

type CreateCategoryRequest struct {
	Code        string  `json:"code,omitempty"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) ToEntity() *category.Category {
	item := category.New(r.Code, r.Name)
	item.Description = r.Description
	return item
}

type UpdateCategoryRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Version     int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateCategoryRequest) ApplyTo(item *category.Category) {
	if r.Code != nil {
		item.Code = *r.Code
	}
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Description != nil {
		item.Description = r.Description
	}
	item.Version = r.Version
}

// --- Response DTOs ---

type CategoryResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DeletionMark bool    `json:"deletionMark,omitempty"`
	Version      int     `json:"version"`
}

func FromCategory(item *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

func FromCategoryList(items []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromCategory(item))
	}
	return out
}
