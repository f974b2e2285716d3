// Package transaction provides the unified sale/purchase document.
//
// Sales and purchases share one record type discriminated by Kind; both
// run through the same validation, posting, and aggregation pipeline. A
// sale expenses stock, a purchase receives it.
package transaction

import (
	"context"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/posting"
)

// Kind discriminates sales from purchases.
type Kind string

const (
	KindSale     Kind = "sale"
	KindPurchase Kind = "purchase"
)

// IsValid reports whether the kind is a known value.
func (k Kind) IsValid() bool {
	return k == KindSale || k == KindPurchase
}

// Transaction represents a sale or purchase document.
type Transaction struct {
	entity.Document

	// Kind discriminates sale from purchase
	Kind Kind `db:"kind" json:"kind"`

	// PartyID references the customer (sale) or supplier (purchase)
	PartyID id.ID `db:"party_id" json:"partyId"`

	// Totals (calculated from lines)
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Money    `db:"total_amount" json:"totalAmount"`

	// Table part: line items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one (product, quantity, unit price) entry.
// Lines exist only inside a transaction and are never persisted
// independently.
type Line struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity and pricing
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Amount    types.Money    `db:"amount" json:"amount"` // quantity × unitPrice
}

// New creates a new transaction document in draft status.
func New(kind Kind, partyID id.ID) *Transaction {
	return &Transaction{
		Document:    entity.NewDocument(),
		Kind:        kind,
		PartyID:     partyID,
		TotalAmount: types.ZeroMoney(),
		Lines:       make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (t *Transaction) AddLine(productID id.ID, quantity types.Quantity, unitPrice types.Money) {
	line := Line{
		LineID:    id.New(),
		LineNo:    len(t.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    unitPrice.Mul(quantity.Decimal()),
	}

	t.Lines = append(t.Lines, line)
	t.RecalculateTotals()
}

// ReplaceLines swaps the table part (used on edit) and recalculates.
// Line numbers and amounts are normalized.
func (t *Transaction) ReplaceLines(lines []Line) {
	t.Lines = make([]Line, 0, len(lines))
	for i, l := range lines {
		if id.IsNil(l.LineID) {
			l.LineID = id.New()
		}
		l.LineNo = i + 1
		l.Amount = l.UnitPrice.Mul(l.Quantity.Decimal())
		t.Lines = append(t.Lines, l)
	}
	t.RecalculateTotals()
}

// RecalculateTotals updates document totals from lines.
func (t *Transaction) RecalculateTotals() {
	t.TotalQuantity = 0
	t.TotalAmount = types.ZeroMoney()

	for _, line := range t.Lines {
		t.TotalQuantity += line.Quantity
		t.TotalAmount = t.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
//
// This is the pure request check: required fields, positive quantities,
// non-negative prices. Stock sufficiency and product existence are
// verified inside the posting transaction against current balances.
func (t *Transaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if !t.Kind.IsValid() {
		return apperror.NewValidation("kind must be sale or purchase").
			WithDetail("field", "kind").
			WithDetail("value", string(t.Kind))
	}

	if id.IsNil(t.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}

	if len(t.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range t.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetPostedVersion, IsPosted, CanPost, MarkCommitted, MarkDeleted
// are inherited from entity.Document.

// GetDocumentType returns the document type name.
func (t *Transaction) GetDocumentType() string {
	return "Transaction"
}

// CanPost validates the document before posting.
func (t *Transaction) CanPost(ctx context.Context) error {
	if err := t.Document.CanPost(ctx); err != nil {
		return err
	}
	return t.Validate(ctx)
}

// recordType maps the kind to a register direction: purchases receive
// stock, sales expense it.
func (t *Transaction) recordType() entity.RecordType {
	if t.Kind == KindSale {
		return entity.RecordTypeExpense
	}
	return entity.RecordTypeReceipt
}

// GenerateMovements creates stock register movements for this document.
func (t *Transaction) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := t.PostedVersion + 1
	recordType := t.recordType()

	for _, line := range t.Lines {
		movements.AddStock(entity.NewStockMovement(
			t.ID,
			t.GetDocumentType(),
			newVersion,
			t.Date,
			recordType,
			line.ProductID,
			line.Quantity,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*Transaction)(nil)
