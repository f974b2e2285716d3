// Package transaction provides the transaction document service.
package transaction

import (
	"context"
	"fmt"
	"time"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/numerator"
	"storekeeper/internal/core/tx"
	"storekeeper/internal/domain"
	"storekeeper/internal/domain/audit"
	"storekeeper/internal/domain/catalogs/party"
	"storekeeper/internal/domain/catalogs/product"
	"storekeeper/internal/domain/posting"
	"storekeeper/pkg/logger"
)

// Auditor records document lifecycle changes to the audit trail.
// Audit failures never fail the business operation.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

// Service provides business operations for transaction documents.
//
// Every commit, edit, and delete runs as one database transaction:
// reference checks, stock adjustment, and document persistence either
// all succeed or leave no trace.
type Service struct {
	repo          Repository
	products      product.Repository
	parties       party.Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
	auditor       Auditor
	hooks         *domain.HookRegistry[*Transaction]
}

// NewService creates a new transaction service.
// auditor may be nil when no audit trail is configured.
func NewService(
	repo Repository,
	products product.Repository,
	parties party.Repository,
	postingEngine *posting.Engine,
	numerator numerator.Generator,
	txManager tx.Manager,
	auditor Auditor,
) *Service {
	return &Service{
		repo:          repo,
		products:      products,
		parties:       parties,
		postingEngine: postingEngine,
		numerator:     numerator,
		txManager:     txManager,
		auditor:       auditor,
		hooks:         domain.NewHookRegistry[*Transaction](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Transaction] {
	return s.hooks
}

// Create validates, posts, and persists a new transaction in one atomic
// operation. On success the document is committed; on any failure nothing
// is stored and no balance changes.
func (s *Service) Create(ctx context.Context, doc *Transaction) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	audit.EnrichCreatedBy(ctx, doc)

	// Generate number if empty (outside the tx, see numerator contract)
	if doc.Number == "" {
		cfg := numerator.DefaultConfig(numberPrefix(doc.Kind))
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, doc); err != nil {
			return err
		}

		return s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
			if err := s.repo.Create(ctx, doc); err != nil {
				return fmt.Errorf("create document: %w", err)
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		})
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, doc, "create")

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "transaction created",
		"id", doc.ID,
		"number", doc.Number,
		"kind", doc.Kind,
		"total_amount", doc.TotalAmount)

	return nil
}

// Update replaces a committed transaction with new content.
//
// Inside one database transaction the old movements are reversed and the
// new ones applied, so the final stock state is exactly as if the original
// document had never existed and the new one had been committed from the
// same baseline. Validation failure of the new content rolls the reversal
// back too.
func (s *Service) Update(ctx context.Context, docID id.ID, partyID id.ID, lines []Line) (*Transaction, error) {
	var updated *Transaction

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.getWithLines(ctx, docID, true)
		if err != nil {
			return err
		}

		if err := doc.CanModify(); err != nil {
			return err
		}

		if !id.IsNil(partyID) {
			doc.PartyID = partyID
		}
		doc.ReplaceLines(lines)
		audit.EnrichUpdatedBy(ctx, doc)

		if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
			return err
		}

		if err := doc.Validate(ctx); err != nil {
			return err
		}

		if err := s.checkReferences(ctx, doc); err != nil {
			return err
		}

		err = s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
			if err := s.repo.Update(ctx, doc); err != nil {
				return fmt.Errorf("update document: %w", err)
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		})
		if err != nil {
			return err
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, updated, "update")

	if err := s.hooks.RunAfterUpdate(ctx, updated); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return updated, nil
}

// Delete reverses a transaction's stock effect and marks it deleted.
// The register is restored to its pre-commit state; the document row is
// kept (soft delete) for the audit trail.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	var deleted *Transaction

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.getWithLines(ctx, docID, true)
		if err != nil {
			return err
		}

		if doc.Status == entity.StatusDeleted {
			return apperror.NewConflict("transaction already deleted").
				WithDetail("id", docID.String())
		}

		if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
			return err
		}

		err = s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
			return s.repo.Update(ctx, doc)
		})
		if err != nil {
			return err
		}

		deleted = doc
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, deleted, "delete")

	if err := s.hooks.RunAfterDelete(ctx, deleted); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "error", err)
	}

	logger.Info(ctx, "transaction deleted",
		"id", deleted.ID,
		"number", deleted.Number)

	return nil
}

// GetByID retrieves a transaction with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Transaction, error) {
	return s.getWithLines(ctx, docID, false)
}

// List retrieves transactions with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) getWithLines(ctx context.Context, docID id.ID, forUpdate bool) (*Transaction, error) {
	var doc *Transaction
	var err error

	if forUpdate {
		doc, err = s.repo.GetForUpdate(ctx, docID)
	} else {
		doc, err = s.repo.GetByID(ctx, docID)
	}
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("transaction", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// checkReferences verifies party and product references inside the posting
// transaction, so a concurrent catalog delete cannot slip past the check.
func (s *Service) checkReferences(ctx context.Context, doc *Transaction) error {
	exists, err := s.parties.Exists(ctx, doc.PartyID)
	if err != nil {
		return fmt.Errorf("check party: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("party", doc.PartyID.String())
	}

	ids := make([]id.ID, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		ids = append(ids, line.ProductID)
	}

	missing, err := s.products.MissingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check products: %w", err)
	}
	if len(missing) > 0 {
		return apperror.NewNotFound("product", missing[0].String())
	}

	return nil
}

// recordAudit writes the document state to the audit trail; failures are
// logged and never propagated.
func (s *Service) recordAudit(ctx context.Context, doc *Transaction, action string) {
	if s.auditor == nil || doc == nil {
		return
	}

	changes := map[string]any{
		"number":         doc.Number,
		"kind":           string(doc.Kind),
		"party_id":       doc.PartyID.String(),
		"status":         string(doc.Status),
		"total_quantity": doc.TotalQuantity.Int64(),
		"total_amount":   doc.TotalAmount.String(),
		"lines":          len(doc.Lines),
	}

	if err := s.auditor.LogChange(ctx, doc.GetDocumentType(), doc.ID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed",
			"document_id", doc.ID, "action", action, "error", err)
	}
}
