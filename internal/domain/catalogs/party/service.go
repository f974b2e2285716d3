package party

import (
	"context"
	"fmt"
	"time"

	"storekeeper/internal/core/numerator"
	"storekeeper/internal/core/tx"
	"storekeeper/internal/domain"
)

// Service provides business logic for the Party catalog.
type Service struct {
	*domain.CatalogService[*Party]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Party service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Party]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "party",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and derived name.
func (s *Service) prepareForCreate(ctx context.Context, item *Party) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PTY"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	item.Name = item.DisplayName()
	return nil
}

// prepareForUpdate keeps the derived name in sync.
func (s *Service) prepareForUpdate(ctx context.Context, item *Party) error {
	item.Name = item.DisplayName()
	return nil
}

// FindBySupplierFlag retrieves suppliers or customers.
func (s *Service) FindBySupplierFlag(ctx context.Context, isSupplier bool, filter domain.ListFilter) (domain.ListResult[*Party], error) {
	return s.repo.FindBySupplierFlag(ctx, isSupplier, filter)
}
