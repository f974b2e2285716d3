package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/id"
	"storekeeper/internal/domain/documents/transaction"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// TransactionHandler handles HTTP requests for Transaction documents.
//
// Create, update, and delete all run through the posting pipeline: the
// document and its register movements change together or not at all.
type TransactionHandler struct {
	*BaseHandler
	service *transaction.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(base *BaseHandler, service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /document/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(doc))
}

// Update handles PUT /document/transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	partyID, err := id.Parse(req.PartyID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid partyId format"))
		return
	}

	doc, err := h.service.Update(ctx, docID, partyID, req.ToLines())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTransaction(doc))
}

// Delete handles DELETE /document/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID handles GET /document/transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTransaction(doc))
}

// List handles GET /document/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.TransactionListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromTransactionList(result.Items)))
}
