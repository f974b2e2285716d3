// Package transaction provides the transaction document repository.
package transaction

import (
	"context"
	"time"

	"storekeeper/internal/core/id"
	"storekeeper/internal/domain"
)

// Repository defines operations for transaction documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Transaction) error
	GetByID(ctx context.Context, docID id.ID) (*Transaction, error)
	GetByNumber(ctx context.Context, number string) (*Transaction, error)
	Update(ctx context.Context, doc *Transaction) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Transaction, error)
}

// ListFilter for filtering transactions.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Kind     *Kind
	PartyID  *id.ID
	Statuses []string
	DateFrom *time.Time
	DateTo   *time.Time
}
