// Package stocktest provides an in-memory stock.Repository for tests of
// packages that drive the register through a real stock.Service.
package stocktest

import (
	"context"
	"time"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/registers/stock"
)

// MemRepo implements stock.Repository over in-memory maps. Not safe for
// concurrent use.
type MemRepo struct {
	Balances  map[id.ID]entity.StockBalance
	Movements []entity.StockMovement
}

// NewMemRepo creates an empty in-memory repository.
func NewMemRepo() *MemRepo {
	return &MemRepo{Balances: make(map[id.ID]entity.StockBalance)}
}

// Quantity returns the current balance quantity for a product.
func (r *MemRepo) Quantity(productID id.ID) types.Quantity {
	return r.Balances[productID].Quantity
}

// SetQuantity seeds a balance directly.
func (r *MemRepo) SetQuantity(productID id.ID, quantity types.Quantity) {
	r.Balances[productID] = entity.StockBalance{ProductID: productID, Quantity: quantity}
}

func (r *MemRepo) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	r.Movements = append(r.Movements, movements...)
	return nil
}

func (r *MemRepo) DeleteMovementsByRecorder(_ context.Context, recorderID id.ID, beforeVersion int) error {
	kept := r.Movements[:0]
	for _, m := range r.Movements {
		if m.RecorderID == recorderID && m.RecorderVersion < beforeVersion {
			continue
		}
		kept = append(kept, m)
	}
	r.Movements = kept
	return nil
}

func (r *MemRepo) GetMovementsByRecorder(_ context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.Movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemRepo) GetBalance(_ context.Context, productID id.ID) (entity.StockBalance, error) {
	b, ok := r.Balances[productID]
	if !ok {
		return entity.StockBalance{}, apperror.NewNotFound("stock balance", productID)
	}
	return b, nil
}

func (r *MemRepo) GetBalanceForUpdate(_ context.Context, productID id.ID) (entity.StockBalance, error) {
	b, ok := r.Balances[productID]
	if !ok {
		b = entity.StockBalance{ProductID: productID}
		r.Balances[productID] = b
	}
	return b, nil
}

func (r *MemRepo) ApplyBalanceDelta(_ context.Context, productID id.ID, delta types.Quantity, movedAt time.Time) error {
	b := r.Balances[productID]
	b.ProductID = productID
	b.Quantity += delta
	b.LastMovementAt = movedAt
	r.Balances[productID] = b
	return nil
}

func (r *MemRepo) GetBalances(_ context.Context, _ stock.BalanceFilter) ([]entity.StockBalance, error) {
	out := make([]entity.StockBalance, 0, len(r.Balances))
	for _, b := range r.Balances {
		out = append(out, b)
	}
	return out, nil
}

func (r *MemRepo) GetMovementHistory(_ context.Context, productID id.ID, _ stock.MovementFilter) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.Movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemRepo) GetTurnover(_ context.Context, _ stock.TurnoverFilter) (stock.Turnover, error) {
	return stock.Turnover{}, nil
}

func (r *MemRepo) RecalculateBalances(_ context.Context, _ *id.ID) error {
	return nil
}

var _ stock.Repository = (*MemRepo)(nil)
