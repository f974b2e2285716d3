package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/domain/catalogs/category"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles HTTP requests for the Category catalog.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCategory(item))
}

// Update handles PUT /catalog/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
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

	h.OK(c, dto.FromCategory(item))
}

// Delete handles DELETE /catalog/categories/:id (soft delete).
func (h *CategoryHandler) Delete(c *gin.Context) {
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

// GetByID handles GET /catalog/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
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

	h.OK(c, dto.FromCategory(item))
}

// SetDeletionMark handles POST /catalog/categories/:id/deletion-mark
func (h *CategoryHandler) SetDeletionMark(c *gin.Context) {
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

// List handles GET /catalog/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromCategoryList(result.Items)))
}
