package handlers

import (
	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/domain/reports"
	"storekeeper/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for aggregation reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.SummaryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	summary, err := h.service.GetSummary(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// GetStockHealth handles GET /reports/stock-health
func (h *ReportsHandler) GetStockHealth(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.GetStockHealth(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// GetCategoryStock handles GET /reports/category-stock
func (h *ReportsHandler) GetCategoryStock(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.service.GetCategoryStock(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
	})
}

// GetGrowth handles GET /reports/growth
func (h *ReportsHandler) GetGrowth(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.GrowthQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid window duration").
			WithDetail("error", err.Error()))
		return
	}

	report, err := h.service.GetGrowth(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}
