package product

import (
	"context"
	"fmt"
	"time"

	"storekeeper/internal/core/id"
	"storekeeper/internal/core/numerator"
	"storekeeper/internal/core/tx"
	"storekeeper/internal/domain"
	"storekeeper/pkg/logger"
)

// ImagePayload is an optional image attached to a product create request.
type ImagePayload struct {
	Data        []byte
	ContentType string
}

// ImageStore persists product images. Implementations are external
// collaborators (object storage, CDN); the catalog only needs the URL back.
type ImageStore interface {
	Save(ctx context.Context, productID string, img ImagePayload) (url string, err error)
}

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
	images    ImageStore
}

// NewService creates a new Product service.
// images may be nil when no image storage is configured.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
	images ImageStore,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
		images:         images,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// CreateWithImage creates a product and optionally attaches an image.
//
// Image storage is enrichment only: the product is created regardless of
// the image outcome, and a failed upload is returned as a warning, never
// as an error.
func (s *Service) CreateWithImage(ctx context.Context, item *Product, img *ImagePayload) (warning string, err error) {
	if err := s.Create(ctx, item); err != nil {
		return "", err
	}

	if img == nil || len(img.Data) == 0 || s.images == nil {
		return "", nil
	}

	url, err := s.images.Save(ctx, item.ID.String(), *img)
	if err != nil {
		logger.Warn(ctx, "product image upload failed",
			"product_id", item.ID.String(), "error", err)
		return "image upload failed; product created without image", nil
	}

	item.ImageURL = &url
	if err := s.Update(ctx, item); err != nil {
		logger.Warn(ctx, "product image url save failed",
			"product_id", item.ID.String(), "error", err)
		return "image stored but url not saved; product created without image", nil
	}

	return "", nil
}

// FindByCategory retrieves products belonging to a category.
func (s *Service) FindByCategory(ctx context.Context, categoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindByCategory(ctx, categoryID, filter)
}
