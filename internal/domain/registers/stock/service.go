// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (posting engine); every method
// that mutates state expects to run inside one.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Apply records a document's movements and adjusts balances, all-or-nothing.
//
// Balances are locked FOR UPDATE in productID order so concurrent postings
// against overlapping product sets cannot deadlock, and the sufficiency
// check always sees the current committed quantity, never a stale snapshot.
// If any single adjustment would drive a balance negative, nothing is
// applied and the caller's transaction must roll back.
func (s *Service) Apply(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Validate movements
	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	deltas := netDeltas(movements)

	if err := s.applyDeltas(ctx, deltas, movements[0].Period); err != nil {
		return err
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// Reverse undoes all movements of a document: balances receive the inverse
// deltas and the movement rows are removed. Like Apply, it is all-or-nothing
// and may not drive any balance negative (e.g. deleting a purchase whose
// goods were already sold).
func (s *Service) Reverse(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	movements, err := s.repo.GetMovementsByRecorder(ctx, recorderID)
	if err != nil {
		return fmt.Errorf("get movements: %w", err)
	}
	if len(movements) == 0 {
		return nil
	}

	deltas := netDeltas(movements)
	for pid, d := range deltas {
		deltas[pid] = d.Neg()
	}

	if err := s.applyDeltas(ctx, deltas, time.Now().UTC()); err != nil {
		return err
	}

	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// applyDeltas locks each touched balance in productID order, verifies the
// post-delta quantity stays non-negative, then adjusts.
func (s *Service) applyDeltas(ctx context.Context, deltas map[id.ID]types.Quantity, movedAt time.Time) error {
	ordered := make([]id.ID, 0, len(deltas))
	for pid := range deltas {
		ordered = append(ordered, pid)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	// Lock everything first: no balance is touched until every line passed.
	for _, pid := range ordered {
		delta := deltas[pid]

		balance, err := s.repo.GetBalanceForUpdate(ctx, pid)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", pid, err)
		}

		if newQty := balance.Quantity + delta; newQty.IsNegative() {
			if delta.IsNegative() {
				return apperror.NewInsufficientStock(
					pid.String(),
					delta.Neg().Int64(),
					balance.Quantity.Int64(),
				)
			}
			return apperror.NewNegativeStock(pid.String(), balance.Quantity.Int64())
		}
	}

	for _, pid := range ordered {
		if deltas[pid].IsZero() {
			continue
		}
		if err := s.repo.ApplyBalanceDelta(ctx, pid, deltas[pid], movedAt); err != nil {
			return fmt.Errorf("apply delta for %s: %w", pid, err)
		}
	}

	return nil
}

// netDeltas folds movements into one signed delta per product.
func netDeltas(movements []entity.StockMovement) map[id.ID]types.Quantity {
	deltas := make(map[id.ID]types.Quantity, len(movements))
	for i := range movements {
		m := &movements[i]
		deltas[m.ProductID] += m.SignedQuantity()
	}
	return deltas
}

// GetProductAvailability returns the current available quantity.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balance, err := s.repo.GetBalance(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance.Quantity, nil
}

// GetBalances returns current balances with filtering.
func (s *Service) GetBalances(ctx context.Context, filter BalanceFilter) ([]entity.StockBalance, error) {
	return s.repo.GetBalances(ctx, filter)
}

// GetMovementHistory returns movement history for a product.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}

// GetStockReport generates a turnover report for the period.
func (s *Service) GetStockReport(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}

// RecalculateBalances rebuilds the balance table from movements.
// Maintenance operation; pass nil to rebuild every product.
func (s *Service) RecalculateBalances(ctx context.Context, productID *id.ID) error {
	return s.repo.RecalculateBalances(ctx, productID)
}
