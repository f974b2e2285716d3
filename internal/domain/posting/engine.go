// Package posting implements the document posting engine.
//
// Posting turns a document into register movements inside a single
// database transaction: either every movement and balance adjustment
// lands, or none do. Documents that are already posted are reversed
// first, so re-posting an edited document is reverse(old) + apply(new)
// in one atomic unit.
package posting

import (
	"context"
	"fmt"

	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/tx"
	"storekeeper/internal/domain/registers/stock"
	"storekeeper/pkg/logger"
)

// Postable is implemented by documents that produce register movements.
// entity.Document provides default implementations for everything except
// GetDocumentType and GenerateMovements.
type Postable interface {
	// GetID returns the document ID.
	GetID() id.ID

	// GetDocumentType returns the document type name (e.g., "Transaction").
	GetDocumentType() string

	// GetPostedVersion returns the current posting iteration.
	GetPostedVersion() int

	// IsPosted reports whether movements are currently recorded.
	IsPosted() bool

	// CanPost validates the document before posting.
	CanPost(ctx context.Context) error

	// GenerateMovements produces the movements for the NEXT posting
	// iteration (recorder version = GetPostedVersion() + 1).
	GenerateMovements(ctx context.Context) (*MovementSet, error)

	// MarkCommitted advances the document status after a successful posting.
	MarkCommitted()

	// MarkDeleted marks the document deleted after a successful reversal.
	MarkDeleted()
}

// MovementSet collects the movements a document generates, grouped per
// register.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock register movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// IsEmpty reports whether the set holds no movements.
func (m *MovementSet) IsEmpty() bool {
	return len(m.Stock) == 0
}

// Engine posts and unposts documents against the registers.
type Engine struct {
	txManager tx.Manager
	stock     *stock.Service
}

// NewEngine creates a posting engine.
func NewEngine(txManager tx.Manager, stockService *stock.Service) *Engine {
	return &Engine{
		txManager: txManager,
		stock:     stockService,
	}
}

// Post records the document's movements.
//
// updateDoc persists the document itself (create or update, including
// lines) and runs inside the same transaction as the register writes.
// If the document is already posted, its previous movements are reversed
// first, so the whole edit is one atomic reverse+apply.
//
// On any failure the transaction rolls back and the stored document,
// movements, and balances are untouched.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	movements, err := doc.GenerateMovements(ctx)
	if err != nil {
		return fmt.Errorf("generate movements: %w", err)
	}

	newVersion := doc.GetPostedVersion() + 1

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if doc.IsPosted() {
			if err := e.stock.Reverse(ctx, doc.GetID(), newVersion); err != nil {
				return err
			}
		}

		if err := e.stock.Apply(ctx, movements.Stock); err != nil {
			return err
		}

		doc.MarkCommitted()

		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
		"posted_version", doc.GetPostedVersion(),
		"movements", len(movements.Stock),
	)

	return nil
}

// Unpost reverses the document's movements and marks it deleted.
// Used by document deletion: the register is restored to the state it
// would have had if the document had never been posted.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if doc.IsPosted() {
			if err := e.stock.Reverse(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
				return err
			}
		}

		doc.MarkDeleted()

		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
	)

	return nil
}
