package transaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/numerator"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain"
	"storekeeper/internal/domain/catalogs/party"
	"storekeeper/internal/domain/catalogs/product"
	"storekeeper/internal/domain/posting"
	"storekeeper/internal/domain/registers/stock"
	"storekeeper/internal/domain/registers/stock/stocktest"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeDocRepo stores documents and lines in memory.
type fakeDocRepo struct {
	docs  map[id.ID]*Transaction
	lines map[id.ID][]Line
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{
		docs:  make(map[id.ID]*Transaction),
		lines: make(map[id.ID][]Line),
	}
}

func (r *fakeDocRepo) Create(_ context.Context, doc *Transaction) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, docID id.ID) (*Transaction, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("transaction", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeDocRepo) GetByNumber(_ context.Context, number string) (*Transaction, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("transaction", number)
}

func (r *fakeDocRepo) Update(_ context.Context, doc *Transaction) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("transaction", doc.ID.String())
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeDocRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *fakeDocRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Transaction], error) {
	result := domain.ListResult[*Transaction]{}
	for _, doc := range r.docs {
		cp := *doc
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeDocRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Transaction, error) {
	return r.GetByID(ctx, docID)
}

// fakeProductRepo overrides the reference check; the embedded interface
// panics on anything the service does not call.
type fakeProductRepo struct {
	product.Repository
	missing []id.ID
}

func (r *fakeProductRepo) MissingIDs(_ context.Context, _ []id.ID) ([]id.ID, error) {
	return r.missing, nil
}

type fakePartyRepo struct {
	party.Repository
	exists bool
}

func (r *fakePartyRepo) Exists(_ context.Context, _ id.ID) (bool, error) {
	return r.exists, nil
}

type fakeAuditor struct {
	actions []string
}

func (a *fakeAuditor) LogChange(_ context.Context, _ string, _ id.ID, action string, _ map[string]any) error {
	a.actions = append(a.actions, action)
	return nil
}

type fixture struct {
	svc            *Service
	docs           *fakeDocRepo
	stock          *stocktest.MemRepo
	products       *fakeProductRepo
	parties        *fakePartyRepo
	auditor        *fakeAuditor
	numeratorCalls int
}

func newFixture() *fixture {
	f := &fixture{
		docs:     newFakeDocRepo(),
		stock:    stocktest.NewMemRepo(),
		products: &fakeProductRepo{},
		parties:  &fakePartyRepo{exists: true},
		auditor:  &fakeAuditor{},
	}

	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
			f.numeratorCalls++
			return fmt.Sprintf("%s-2026-00001", cfg.Prefix), nil
		},
	}

	txManager := passthroughTxManager{}
	engine := posting.NewEngine(txManager, stock.NewService(f.stock))

	f.svc = NewService(f.docs, f.products, f.parties, engine, gen, txManager, f.auditor)
	return f
}

func newPurchase(productID id.ID, qty types.Quantity) *Transaction {
	doc := New(KindPurchase, id.New())
	doc.AddLine(productID, qty, types.NewMoney(2.00))
	return doc
}

func TestCreate_PostsAndPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	doc := newPurchase(productID, 10)

	require.NoError(t, f.svc.Create(ctx, doc))

	assert.Equal(t, "PUR-2026-00001", doc.Number)
	assert.Equal(t, entity.StatusCommitted, doc.Status)
	assert.Equal(t, 1, doc.PostedVersion)

	assert.Equal(t, types.Quantity(10), f.stock.Quantity(productID))
	assert.Len(t, f.docs.docs, 1)
	assert.Len(t, f.docs.lines[doc.ID], 1)
	assert.Equal(t, []string{"create"}, f.auditor.actions)
}

func TestCreate_SaleRequiresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	f.stock.SetQuantity(productID, 3)

	doc := New(KindSale, id.New())
	doc.AddLine(productID, 5, types.NewMoney(10.00))

	err := f.svc.Create(ctx, doc)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, types.Quantity(3), f.stock.Quantity(productID))
	assert.Empty(t, f.docs.docs)
	assert.Empty(t, f.auditor.actions)
}

func TestCreate_MissingParty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.parties.exists = false

	err := f.svc.Create(ctx, newPurchase(id.New(), 1))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.docs.docs)
}

func TestCreate_MissingProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	f.products.missing = []id.ID{productID}

	err := f.svc.Create(ctx, newPurchase(productID, 1))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.docs.docs)
}

func TestCreate_KeepsProvidedNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := newPurchase(id.New(), 1)
	doc.Number = "PUR-2026-09999"

	require.NoError(t, f.svc.Create(ctx, doc))
	assert.Equal(t, "PUR-2026-09999", doc.Number)
	assert.Equal(t, 0, f.numeratorCalls)
}

func TestCreate_BeforeCreateHookAborts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.svc.Hooks().OnBeforeCreate(func(_ context.Context, _ *Transaction) error {
		return apperror.NewValidation("blocked by hook")
	})

	err := f.svc.Create(ctx, newPurchase(id.New(), 1))
	require.Error(t, err)
	assert.Empty(t, f.docs.docs)
	assert.Empty(t, f.stock.Movements)
}

func TestUpdate_ReversesAndReapplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	doc := newPurchase(productID, 10)
	require.NoError(t, f.svc.Create(ctx, doc))
	require.Equal(t, types.Quantity(10), f.stock.Quantity(productID))

	updated, err := f.svc.Update(ctx, doc.ID, id.Nil(), []Line{
		{ProductID: productID, Quantity: 6, UnitPrice: types.NewMoney(2.00)},
	})
	require.NoError(t, err)

	// Final state as if the document had said 6 all along.
	assert.Equal(t, types.Quantity(6), f.stock.Quantity(productID))
	assert.Equal(t, entity.StatusEdited, updated.Status)
	assert.Equal(t, 2, updated.PostedVersion)
	assert.Equal(t, types.Quantity(6), updated.TotalQuantity)
	assert.Equal(t, []string{"create", "update"}, f.auditor.actions)
}

func TestUpdate_ChangesParty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	doc := newPurchase(productID, 2)
	require.NoError(t, f.svc.Create(ctx, doc))

	newParty := id.New()
	updated, err := f.svc.Update(ctx, doc.ID, newParty, []Line{
		{ProductID: productID, Quantity: 2, UnitPrice: types.NewMoney(2.00)},
	})
	require.NoError(t, err)
	assert.Equal(t, newParty, updated.PartyID)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.Update(ctx, id.New(), id.Nil(), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_RestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	doc := newPurchase(productID, 10)
	require.NoError(t, f.svc.Create(ctx, doc))

	require.NoError(t, f.svc.Delete(ctx, doc.ID))

	assert.Equal(t, types.Quantity(0), f.stock.Quantity(productID))
	assert.Empty(t, f.stock.Movements)

	stored := f.docs.docs[doc.ID]
	require.NotNil(t, stored, "soft delete keeps the document row")
	assert.Equal(t, entity.StatusDeleted, stored.Status)
	assert.True(t, stored.DeletionMark)
	assert.Equal(t, []string{"create", "delete"}, f.auditor.actions)
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := newPurchase(id.New(), 1)
	require.NoError(t, f.svc.Create(ctx, doc))
	require.NoError(t, f.svc.Delete(ctx, doc.ID))

	err := f.svc.Delete(ctx, doc.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestDelete_BlockedWhenGoodsSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	productID := id.New()
	purchase := newPurchase(productID, 10)
	require.NoError(t, f.svc.Create(ctx, purchase))

	sale := New(KindSale, id.New())
	sale.AddLine(productID, 8, types.NewMoney(5.00))
	require.NoError(t, f.svc.Create(ctx, sale))

	err := f.svc.Delete(ctx, purchase.ID)
	require.Error(t, err)

	assert.Equal(t, types.Quantity(2), f.stock.Quantity(productID))
	stored := f.docs.docs[purchase.ID]
	assert.True(t, stored.IsPosted(), "purchase must stay posted after a failed reversal")
}
