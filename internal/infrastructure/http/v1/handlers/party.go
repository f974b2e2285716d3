package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/domain/catalogs/party"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// PartyHandler handles HTTP requests for the Party catalog.
type PartyHandler struct {
	*BaseHandler
	service *party.Service
}

// NewPartyHandler creates a new party handler.
func NewPartyHandler(base *BaseHandler, service *party.Service) *PartyHandler {
	return &PartyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/parties
func (h *PartyHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromParty(item))
}

// Update handles PUT /catalog/parties/:id
func (h *PartyHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePartyRequest
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

	h.OK(c, dto.FromParty(item))
}

// Delete handles DELETE /catalog/parties/:id (soft delete; parties stay
// referenced by historical transactions).
func (h *PartyHandler) Delete(c *gin.Context) {
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

// GetByID handles GET /catalog/parties/:id
func (h *PartyHandler) GetByID(c *gin.Context) {
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

	h.OK(c, dto.FromParty(item))
}

// SetDeletionMark handles POST /catalog/parties/:id/deletion-mark
func (h *PartyHandler) SetDeletionMark(c *gin.Context) {
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

// List handles GET /catalog/parties
// Supports ?isSupplier= to split suppliers from customers.
func (h *PartyHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.PartyListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := query.ToFilter()

	if query.IsSupplier != nil {
		result, err := h.service.FindBySupplierFlag(ctx, *query.IsSupplier, filter)
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, dto.NewListResponse(result, dto.FromPartyList(result.Items)))
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromPartyList(result.Items)))
}
