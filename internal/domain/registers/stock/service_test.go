package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	balances     map[id.ID]entity.StockBalance
	movements    []entity.StockMovement
	deltaApplied int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		balances: make(map[id.ID]entity.StockBalance),
	}
}

func (r *fakeRepo) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeRepo) DeleteMovementsByRecorder(_ context.Context, recorderID id.ID, beforeVersion int) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.RecorderID == recorderID && m.RecorderVersion < beforeVersion {
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return nil
}

func (r *fakeRepo) GetMovementsByRecorder(_ context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalance(_ context.Context, productID id.ID) (entity.StockBalance, error) {
	b, ok := r.balances[productID]
	if !ok {
		return entity.StockBalance{}, apperror.NewNotFound("stock balance", productID)
	}
	return b, nil
}

func (r *fakeRepo) GetBalanceForUpdate(_ context.Context, productID id.ID) (entity.StockBalance, error) {
	b, ok := r.balances[productID]
	if !ok {
		b = entity.StockBalance{ProductID: productID}
		r.balances[productID] = b
	}
	return b, nil
}

func (r *fakeRepo) ApplyBalanceDelta(_ context.Context, productID id.ID, delta types.Quantity, movedAt time.Time) error {
	b := r.balances[productID]
	b.ProductID = productID
	b.Quantity += delta
	b.LastMovementAt = movedAt
	r.balances[productID] = b
	r.deltaApplied++
	return nil
}

func (r *fakeRepo) GetBalances(_ context.Context, _ BalanceFilter) ([]entity.StockBalance, error) {
	out := make([]entity.StockBalance, 0, len(r.balances))
	for _, b := range r.balances {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) GetMovementHistory(_ context.Context, productID id.ID, _ MovementFilter) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetTurnover(_ context.Context, _ TurnoverFilter) (Turnover, error) {
	return Turnover{}, nil
}

func (r *fakeRepo) RecalculateBalances(_ context.Context, _ *id.ID) error {
	return nil
}

func (r *fakeRepo) quantity(productID id.ID) types.Quantity {
	return r.balances[productID].Quantity
}

func receipt(recorderID, productID id.ID, qty types.Quantity) entity.StockMovement {
	return entity.NewStockMovement(recorderID, "Transaction", 1, time.Now().UTC(), entity.RecordTypeReceipt, productID, qty)
}

func expense(recorderID, productID id.ID, qty types.Quantity) entity.StockMovement {
	return entity.NewStockMovement(recorderID, "Transaction", 1, time.Now().UTC(), entity.RecordTypeExpense, productID, qty)
}

func TestApply_ReceiptIncreasesBalance(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	recorderID := id.New()

	err := svc.Apply(ctx, []entity.StockMovement{receipt(recorderID, productID, 10)})
	require.NoError(t, err)

	assert.Equal(t, types.Quantity(10), repo.quantity(productID))
	assert.Len(t, repo.movements, 1)
}

func TestApply_NetsMovementsPerProduct(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	recorderID := id.New()
	repo.balances[productID] = entity.StockBalance{ProductID: productID, Quantity: 5}

	// Two receipts and one expense of the same product fold into +4.
	err := svc.Apply(ctx, []entity.StockMovement{
		receipt(recorderID, productID, 3),
		receipt(recorderID, productID, 4),
		expense(recorderID, productID, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, types.Quantity(9), repo.quantity(productID))
	assert.Len(t, repo.movements, 3)
	assert.Equal(t, 1, repo.deltaApplied, "net delta should be applied once per product")
}

func TestApply_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	repo.balances[productID] = entity.StockBalance{ProductID: productID, Quantity: 3}

	err := svc.Apply(ctx, []entity.StockMovement{expense(id.New(), productID, 5)})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])

	assert.Equal(t, types.Quantity(3), repo.quantity(productID), "balance must stay untouched")
	assert.Empty(t, repo.movements)
}

func TestApply_MultiLineAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	stocked := id.New()
	empty := id.New()
	repo.balances[stocked] = entity.StockBalance{ProductID: stocked, Quantity: 100}

	recorderID := id.New()
	err := svc.Apply(ctx, []entity.StockMovement{
		expense(recorderID, stocked, 2),
		expense(recorderID, empty, 1),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, types.Quantity(100), repo.quantity(stocked), "no line may be applied when one fails")
	assert.Equal(t, types.Quantity(0), repo.quantity(empty))
	assert.Empty(t, repo.movements)
	assert.Equal(t, 0, repo.deltaApplied)
}

func TestApply_ValidatesMovements(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	t.Run("non-positive quantity", func(t *testing.T) {
		err := svc.Apply(ctx, []entity.StockMovement{receipt(id.New(), id.New(), 0)})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("missing recorder", func(t *testing.T) {
		m := receipt(id.New(), id.New(), 1)
		m.RecorderID = id.Nil()
		err := svc.Apply(ctx, []entity.StockMovement{m})
		require.Error(t, err)
	})

	t.Run("empty set is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Apply(ctx, nil))
	})
}

func TestReverse_RestoresBalancesAndDeletesMovements(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	recorderID := id.New()

	require.NoError(t, svc.Apply(ctx, []entity.StockMovement{receipt(recorderID, productID, 7)}))
	require.Equal(t, types.Quantity(7), repo.quantity(productID))

	err := svc.Reverse(ctx, recorderID, 2)
	require.NoError(t, err)

	assert.Equal(t, types.Quantity(0), repo.quantity(productID))
	assert.Empty(t, repo.movements)
}

func TestReverse_NoMovementsIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.Reverse(ctx, id.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.deltaApplied)
}

func TestReverse_RejectsNegativeResult(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	purchaseID := id.New()
	saleID := id.New()

	// Receive 10, sell 8. Reversing the receipt would leave -8.
	require.NoError(t, svc.Apply(ctx, []entity.StockMovement{receipt(purchaseID, productID, 10)}))
	require.NoError(t, svc.Apply(ctx, []entity.StockMovement{expense(saleID, productID, 8)}))
	require.Equal(t, types.Quantity(2), repo.quantity(productID))

	err := svc.Reverse(ctx, purchaseID, 2)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Equal(t, types.Quantity(2), repo.quantity(productID))
	movements, _ := repo.GetMovementsByRecorder(ctx, purchaseID)
	assert.Len(t, movements, 1, "purchase movements must survive a failed reversal")
}

func TestGetProductAvailability(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()

	qty, err := svc.GetProductAvailability(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0), qty, "unknown product reads as zero")

	repo.balances[productID] = entity.StockBalance{ProductID: productID, Quantity: 42}

	qty, err = svc.GetProductAvailability(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(42), qty)
}
