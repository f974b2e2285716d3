package dto

import (
	"strings"
	"time"

	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/registers/stock"
)

// --- Balance query ---

type StockBalanceQuery struct {
	ProductIDs  string `form:"productIds"` // comma-separated
	ExcludeZero bool   `form:"excludeZero"`
	MinQuantity *int64 `form:"minQuantity"`
	MaxQuantity *int64 `form:"maxQuantity"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

func (q *StockBalanceQuery) ToFilter() stock.BalanceFilter {
	f := stock.BalanceFilter{
		ExcludeZero: q.ExcludeZero,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}

	if q.MinQuantity != nil {
		min := types.Quantity(*q.MinQuantity)
		f.MinQuantity = &min
	}
	if q.MaxQuantity != nil {
		max := types.Quantity(*q.MaxQuantity)
		f.MaxQuantity = &max
	}

	if q.ProductIDs != "" {
		for _, raw := range strings.Split(q.ProductIDs, ",") {
			parsed, err := id.Parse(strings.TrimSpace(raw))
			if err != nil {
				continue
			}
			f.ProductIDs = append(f.ProductIDs, parsed)
		}
	}

	return f
}

// --- Movement query ---

type StockMovementQuery struct {
	RecordType string     `form:"recordType" binding:"omitempty,oneof=receipt expense"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset     int        `form:"offset" binding:"omitempty,min=0"`
}

func (q *StockMovementQuery) ToFilter() stock.MovementFilter {
	f := stock.MovementFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	if q.RecordType != "" {
		rt := entity.RecordType(q.RecordType)
		f.RecordType = &rt
	}

	return f
}

// --- Turnover query ---

type StockTurnoverQuery struct {
	ProductID string    `form:"productId" binding:"omitempty,uuid"`
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate    time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

func (q *StockTurnoverQuery) ToFilter() stock.TurnoverFilter {
	f := stock.TurnoverFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
	}

	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err == nil {
			f.ProductID = &productID
		}
	}

	return f
}

// --- Response DTOs ---

type StockBalanceResponse struct {
	ProductID      string    `json:"productId"`
	Quantity       int64     `json:"quantity"`
	LastMovementAt time.Time `json:"lastMovementAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromStockBalance(b entity.StockBalance) StockBalanceResponse {
	return StockBalanceResponse{
		ProductID:      b.ProductID.String(),
		Quantity:       b.Quantity.Int64(),
		LastMovementAt: b.LastMovementAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func FromStockBalanceList(balances []entity.StockBalance) []StockBalanceResponse {
	out := make([]StockBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, FromStockBalance(b))
	}
	return out
}

type StockMovementResponse struct {
	LineID          string    `json:"lineId"`
	RecorderID      string    `json:"recorderId"`
	RecorderType    string    `json:"recorderType"`
	RecorderVersion int       `json:"recorderVersion"`
	Period          time.Time `json:"period"`
	RecordType      string    `json:"recordType"`
	ProductID       string    `json:"productId"`
	Quantity        int64     `json:"quantity"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromStockMovement(m entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		LineID:          m.LineID.String(),
		RecorderID:      m.RecorderID.String(),
		RecorderType:    m.RecorderType,
		RecorderVersion: m.RecorderVersion,
		Period:          m.Period,
		RecordType:      string(m.RecordType),
		ProductID:       m.ProductID.String(),
		Quantity:        m.Quantity.Int64(),
		CreatedAt:       m.CreatedAt,
	}
}

func FromStockMovementList(movements []entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, FromStockMovement(m))
	}
	return out
}

type StockTurnoverResponse struct {
	ProductID      string `json:"productId,omitempty"`
	OpeningBalance int64  `json:"openingBalance"`
	Receipt        int64  `json:"receipt"`
	Expense        int64  `json:"expense"`
	ClosingBalance int64  `json:"closingBalance"`
}

func FromStockTurnover(t stock.Turnover) StockTurnoverResponse {
	resp := StockTurnoverResponse{
		OpeningBalance: t.OpeningBalance.Int64(),
		Receipt:        t.Receipt.Int64(),
		Expense:        t.Expense.Int64(),
		ClosingBalance: t.ClosingBalance.Int64(),
	}
	if !id.IsNil(t.ProductID) {
		resp.ProductID = t.ProductID.String()
	}
	return resp
}

type ProductAvailabilityResponse struct {
	ProductID string `json:"productId"`
	Available int64  `json:"available"`
}
