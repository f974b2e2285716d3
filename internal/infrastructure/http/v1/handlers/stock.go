package handlers

import (
	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/id"
	"storekeeper/internal/domain/registers/stock"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock register.
// All endpoints are read-only: register state changes only through
// document posting.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetBalances handles GET /registers/stock/balances
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.StockBalanceQuery
	if !h.BindQuery(c, &query) {
		return
	}

	balances, err := h.service.GetBalances(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromStockBalanceList(balances),
		TotalCount: int64(len(balances)),
	})
}

// GetMovements handles GET /registers/stock/movements?productId=
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDQuery(c, c.Query("productId"), "productId")
	if !ok {
		return
	}

	var query dto.StockMovementQuery
	if !h.BindQuery(c, &query) {
		return
	}

	movements, err := h.service.GetMovementHistory(ctx, productID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromStockMovementList(movements),
		TotalCount: int64(len(movements)),
	})
}

// GetTurnovers handles GET /registers/stock/turnovers
func (h *StockHandler) GetTurnovers(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.StockTurnoverQuery
	if !h.BindQuery(c, &query) {
		return
	}

	turnover, err := h.service.GetStockReport(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockTurnover(turnover))
}

// Recalculate handles POST /registers/stock/recalculate
// Rebuilds balance rows from movements; optional ?productId= limits the
// rebuild to one product.
func (h *StockHandler) Recalculate(c *gin.Context) {
	ctx := c.Request.Context()

	var productID *id.ID
	if raw := c.Query("productId"); raw != "" {
		parsed, ok := h.ParseIDQuery(c, raw, "productId")
		if !ok {
			return
		}
		productID = &parsed
	}

	if err := h.service.RecalculateBalances(ctx, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "balances recalculated")
}

// GetAvailability handles GET /registers/stock/availability/:productId
func (h *StockHandler) GetAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDQuery(c, c.Param("productId"), "productId")
	if !ok {
		return
	}

	available, err := h.service.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ProductAvailabilityResponse{
		ProductID: productID.String(),
		Available: available.Int64(),
	})
}
