package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

func validSale() *Transaction {
	doc := New(KindSale, id.New())
	doc.AddLine(id.New(), 5, types.NewMoney(10.00))
	return doc
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(doc *Transaction)
		wantErr bool
	}{
		{
			name:    "valid sale",
			mutate:  func(doc *Transaction) {},
			wantErr: false,
		},
		{
			name: "valid purchase",
			mutate: func(doc *Transaction) {
				doc.Kind = KindPurchase
			},
			wantErr: false,
		},
		{
			name: "unknown kind",
			mutate: func(doc *Transaction) {
				doc.Kind = Kind("transfer")
			},
			wantErr: true,
		},
		{
			name: "missing party",
			mutate: func(doc *Transaction) {
				doc.PartyID = id.Nil()
			},
			wantErr: true,
		},
		{
			name: "no lines",
			mutate: func(doc *Transaction) {
				doc.Lines = nil
			},
			wantErr: true,
		},
		{
			name: "line without product",
			mutate: func(doc *Transaction) {
				doc.Lines[0].ProductID = id.Nil()
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			mutate: func(doc *Transaction) {
				doc.Lines[0].Quantity = 0
			},
			wantErr: true,
		},
		{
			name: "negative quantity",
			mutate: func(doc *Transaction) {
				doc.Lines[0].Quantity = -3
			},
			wantErr: true,
		},
		{
			name: "negative unit price",
			mutate: func(doc *Transaction) {
				doc.Lines[0].UnitPrice = types.NewMoney(-1)
			},
			wantErr: true,
		},
		{
			name: "zero unit price is allowed",
			mutate: func(doc *Transaction) {
				doc.Lines[0].UnitPrice = types.ZeroMoney()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validSale()
			tt.mutate(doc)

			err := doc.Validate(ctx)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddLine_Totals(t *testing.T) {
	doc := New(KindSale, id.New())

	doc.AddLine(id.New(), 5, types.NewMoney(10.00))
	doc.AddLine(id.New(), 3, types.NewMoney(2.50))

	assert.Equal(t, types.Quantity(8), doc.TotalQuantity)
	assert.True(t, doc.TotalAmount.Equal(types.NewMoney(57.50)),
		"expected 57.50, got %s", doc.TotalAmount)

	assert.Equal(t, 1, doc.Lines[0].LineNo)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
	assert.True(t, doc.Lines[0].Amount.Equal(types.NewMoney(50.00)))
	assert.True(t, doc.Lines[1].Amount.Equal(types.NewMoney(7.50)))
}

func TestReplaceLines_Normalizes(t *testing.T) {
	doc := validSale()

	productA := id.New()
	productB := id.New()

	doc.ReplaceLines([]Line{
		{ProductID: productA, Quantity: 2, UnitPrice: types.NewMoney(4.00)},
		{ProductID: productB, Quantity: 7, UnitPrice: types.NewMoney(1.00), LineNo: 99},
	})

	require.Len(t, doc.Lines, 2)

	assert.Equal(t, 1, doc.Lines[0].LineNo)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
	assert.False(t, id.IsNil(doc.Lines[0].LineID))
	assert.True(t, doc.Lines[0].Amount.Equal(types.NewMoney(8.00)))

	assert.Equal(t, types.Quantity(9), doc.TotalQuantity)
	assert.True(t, doc.TotalAmount.Equal(types.NewMoney(15.00)))
}

func TestStatusMachine(t *testing.T) {
	doc := validSale()
	assert.Equal(t, entity.StatusDraft, doc.Status)
	assert.False(t, doc.IsPosted())

	doc.MarkCommitted()
	assert.Equal(t, entity.StatusCommitted, doc.Status)
	assert.Equal(t, 1, doc.PostedVersion)
	assert.True(t, doc.IsPosted())

	doc.MarkCommitted()
	assert.Equal(t, entity.StatusEdited, doc.Status)
	assert.Equal(t, 2, doc.PostedVersion)
	assert.True(t, doc.IsPosted())

	doc.MarkDeleted()
	assert.Equal(t, entity.StatusDeleted, doc.Status)
	assert.True(t, doc.DeletionMark)
	assert.False(t, doc.IsPosted())

	assert.Error(t, doc.CanModify())
	assert.Error(t, doc.CanPost(context.Background()))
}

func TestGenerateMovements(t *testing.T) {
	ctx := context.Background()

	t.Run("sale expenses stock", func(t *testing.T) {
		doc := New(KindSale, id.New())
		productA := id.New()
		productB := id.New()
		doc.AddLine(productA, 5, types.NewMoney(10.00))
		doc.AddLine(productB, 2, types.NewMoney(3.00))

		set, err := doc.GenerateMovements(ctx)
		require.NoError(t, err)
		require.Len(t, set.Stock, 2)

		for _, m := range set.Stock {
			assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
			assert.Equal(t, doc.ID, m.RecorderID)
			assert.Equal(t, "Transaction", m.RecorderType)
			assert.Equal(t, doc.PostedVersion+1, m.RecorderVersion)
			assert.Equal(t, doc.Date, m.Period)
		}

		assert.Equal(t, productA, set.Stock[0].ProductID)
		assert.Equal(t, types.Quantity(5), set.Stock[0].Quantity)
		assert.Equal(t, types.Quantity(-5), set.Stock[0].SignedQuantity())
	})

	t.Run("purchase receives stock", func(t *testing.T) {
		doc := New(KindPurchase, id.New())
		doc.AddLine(id.New(), 4, types.NewMoney(2.00))

		set, err := doc.GenerateMovements(ctx)
		require.NoError(t, err)
		require.Len(t, set.Stock, 1)

		assert.Equal(t, entity.RecordTypeReceipt, set.Stock[0].RecordType)
		assert.Equal(t, types.Quantity(4), set.Stock[0].SignedQuantity())
	})
}
