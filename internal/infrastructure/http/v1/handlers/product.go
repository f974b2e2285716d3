package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/domain/catalogs/product"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the Product catalog.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/products
//
// An optional image payload is stored after the product row; image
// failures surface as a warning in the response, not as an error.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var img *product.ImagePayload
	if req.Image != nil {
		payload, err := req.Image.ToPayload()
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid image payload").
				WithDetail("error", err.Error()))
			return
		}
		img = payload
	}

	item := req.ToEntity()

	warning, err := h.service.CreateWithImage(ctx, item, img)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromProduct(item)
	response.Warning = warning
	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(item)

	if err := h.service.Update(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(item))
}

// Delete handles DELETE /catalog/products/:id (soft delete).
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID handles GET /catalog/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(item))
}

// List handles GET /catalog/products
// Supports ?categoryId= for per-category listings.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := query.ToFilter()

	if categoryStr := c.Query("categoryId"); categoryStr != "" {
		categoryID, ok := h.ParseIDQuery(c, categoryStr, "categoryId")
		if !ok {
			return
		}

		result, err := h.service.FindByCategory(ctx, categoryID, filter)
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, dto.NewListResponse(result, dto.FromProductList(result.Items)))
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromProductList(result.Items)))
}

// SetDeletionMark handles POST /catalog/products/:id/deletion-mark
func (h *ProductHandler) SetDeletionMark(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(ctx, itemID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}
