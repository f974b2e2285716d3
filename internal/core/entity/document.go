package entity

import (
	"context"
	"time"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/id"
)

// DocStatus is the lifecycle state of a document.
//
// Transitions:
//
//	draft -> committed           (first posting)
//	committed -> edited          (re-posting after modification)
//	edited -> edited             (further modifications)
//	committed|edited -> deleted  (reversal)
//
// Deleted is terminal. A deleted document keeps its row for audit but
// contributes nothing to registers or reports.
type DocStatus string

const (
	StatusDraft     DocStatus = "draft"
	StatusCommitted DocStatus = "committed"
	StatusEdited    DocStatus = "edited"
	StatusDeleted   DocStatus = "deleted"
)

// IsActive reports whether the status contributes to register balances.
func (s DocStatus) IsActive() bool {
	return s == StatusCommitted || s == StatusEdited
}

// Document is the base type for business transactions.
// Examples: sale and purchase transactions.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state (draft/committed/edited/deleted)
	Status DocStatus `db:"status" json:"status"`

	// PostedVersion tracks posting iterations for movement reconciliation
	// Incremented each time document movements are (re)recorded
	PostedVersion int `db:"posted_version" json:"postedVersion"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID in draft status.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// CanModify checks if document can be modified.
// Deleted documents are immutable.
func (d *Document) CanModify() error {
	if d.Status == StatusDeleted {
		return apperror.NewConflict("cannot modify deleted document").
			WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkCommitted records a successful posting and advances the status.
// First posting yields committed; subsequent postings yield edited.
func (d *Document) MarkCommitted() {
	if d.Status == StatusDraft {
		d.Status = StatusCommitted
	} else {
		d.Status = StatusEdited
	}
	d.PostedVersion++
	d.Touch()
}

// MarkDeleted sets deleted status after movements are reversed.
func (d *Document) MarkDeleted() {
	d.Status = StatusDeleted
	d.BaseEntity.MarkDeleted()
	d.Touch()
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// --- Postable interface default implementations ---
// Document-specific types only need to implement GetDocumentType()
// and GenerateMovements().

// GetID returns the document ID (Postable interface).
func (d *Document) GetID() id.ID {
	return d.ID
}

// GetPostedVersion returns the current posting version (Postable interface).
func (d *Document) GetPostedVersion() int {
	return d.PostedVersion
}

// IsPosted returns true if document movements are currently recorded
// (Postable interface).
func (d *Document) IsPosted() bool {
	return d.Status.IsActive()
}

// CanPost validates if document can be posted (Postable interface default).
// Override in specific document types if additional validation is needed.
func (d *Document) CanPost(ctx context.Context) error {
	if d.Status == StatusDeleted {
		return apperror.NewConflict("cannot post deleted document").
			WithDetail("document_id", d.ID.String())
	}
	return d.Validate(ctx)
}
