package posting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/registers/stock"
	"storekeeper/internal/domain/registers/stock/stocktest"
)

// passthroughTxManager runs the function directly. Rollback semantics are
// the database's job; these tests assert that the engine returns the error
// before any document state change leaks out.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// testDoc is a minimal Postable document with quantity lines.
type testDoc struct {
	entity.Document
	recordType entity.RecordType
	lines      map[id.ID]types.Quantity
}

func newTestDoc(recordType entity.RecordType) *testDoc {
	return &testDoc{
		Document:   entity.NewDocument(),
		recordType: recordType,
		lines:      make(map[id.ID]types.Quantity),
	}
}

func (d *testDoc) GetDocumentType() string { return "TestDoc" }

func (d *testDoc) GenerateMovements(_ context.Context) (*MovementSet, error) {
	set := NewMovementSet()
	for productID, qty := range d.lines {
		set.AddStock(entity.NewStockMovement(
			d.ID, d.GetDocumentType(), d.PostedVersion+1,
			d.Date, d.recordType, productID, qty,
		))
	}
	return set, nil
}

func newEngine() (*Engine, *stocktest.MemRepo) {
	repo := stocktest.NewMemRepo()
	return NewEngine(passthroughTxManager{}, stock.NewService(repo)), repo
}

func noopUpdate(_ context.Context) error { return nil }

func TestPost_PurchaseThenSale(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	productID := id.New()

	purchase := newTestDoc(entity.RecordTypeReceipt)
	purchase.lines[productID] = 10

	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))
	assert.Equal(t, entity.StatusCommitted, purchase.Status)
	assert.Equal(t, 1, purchase.PostedVersion)
	assert.Equal(t, types.Quantity(10), repo.Quantity(productID))

	sale := newTestDoc(entity.RecordTypeExpense)
	sale.lines[productID] = 4

	require.NoError(t, engine.Post(ctx, sale, noopUpdate))
	assert.Equal(t, types.Quantity(6), repo.Quantity(productID))
	assert.Len(t, repo.Movements, 2)
}

func TestPost_InsufficientStockRejected(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	productID := id.New()
	repo.SetQuantity(productID, 3)

	sale := newTestDoc(entity.RecordTypeExpense)
	sale.lines[productID] = 5

	updateCalled := false
	err := engine.Post(ctx, sale, func(_ context.Context) error {
		updateCalled = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.False(t, updateCalled, "document must not be persisted on failure")
	assert.Equal(t, entity.StatusDraft, sale.Status)
	assert.Equal(t, 0, sale.PostedVersion)
	assert.Equal(t, types.Quantity(3), repo.Quantity(productID))
	assert.Empty(t, repo.Movements)
}

func TestPost_RepostReplacesMovements(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	productID := id.New()
	purchase := newTestDoc(entity.RecordTypeReceipt)
	purchase.lines[productID] = 5

	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))
	purchase.lines[productID] = 8
	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))
	purchase.lines[productID] = 12
	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))

	// Only the latest posting iteration contributes.
	assert.Equal(t, types.Quantity(12), repo.Quantity(productID))
	assert.Len(t, repo.Movements, 1)
	assert.Equal(t, 3, repo.Movements[0].RecorderVersion)
	assert.Equal(t, entity.StatusEdited, purchase.Status)
	assert.Equal(t, 3, purchase.PostedVersion)
}

func TestUnpost_RestoresBalances(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	productID := id.New()
	purchase := newTestDoc(entity.RecordTypeReceipt)
	purchase.lines[productID] = 10

	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))
	require.Equal(t, types.Quantity(10), repo.Quantity(productID))

	require.NoError(t, engine.Unpost(ctx, purchase, noopUpdate))

	assert.Equal(t, entity.StatusDeleted, purchase.Status)
	assert.True(t, purchase.DeletionMark)
	assert.Equal(t, types.Quantity(0), repo.Quantity(productID))
	assert.Empty(t, repo.Movements)
}

func TestUnpost_DraftJustMarksDeleted(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	draft := newTestDoc(entity.RecordTypeReceipt)
	draft.lines[id.New()] = 3

	require.NoError(t, engine.Unpost(ctx, draft, noopUpdate))

	assert.Equal(t, entity.StatusDeleted, draft.Status)
	assert.Empty(t, repo.Movements)
}

func TestUnpost_RejectedWhenGoodsAlreadySold(t *testing.T) {
	ctx := context.Background()
	engine, repo := newEngine()

	productID := id.New()

	purchase := newTestDoc(entity.RecordTypeReceipt)
	purchase.lines[productID] = 10
	require.NoError(t, engine.Post(ctx, purchase, noopUpdate))

	sale := newTestDoc(entity.RecordTypeExpense)
	sale.lines[productID] = 8
	require.NoError(t, engine.Post(ctx, sale, noopUpdate))

	// Reversing the purchase would leave the balance at -8.
	err := engine.Unpost(ctx, purchase, noopUpdate)
	require.Error(t, err)

	assert.Equal(t, types.Quantity(2), repo.Quantity(productID))
	assert.True(t, purchase.IsPosted(), "purchase must stay posted after a failed reversal")
}

func TestPost_DeletedDocumentRejected(t *testing.T) {
	ctx := context.Background()
	engine, _ := newEngine()

	doc := newTestDoc(entity.RecordTypeReceipt)
	doc.lines[id.New()] = 1
	doc.MarkDeleted()

	err := engine.Post(ctx, doc, noopUpdate)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestUnpost_UpdateErrorPropagates(t *testing.T) {
	ctx := context.Background()
	engine, _ := newEngine()

	draft := newTestDoc(entity.RecordTypeReceipt)

	err := engine.Unpost(ctx, draft, func(_ context.Context) error {
		return apperror.NewInternal(errors.New("persist failed"))
	})
	require.Error(t, err)
}
