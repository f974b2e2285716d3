package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storekeeper/internal/domain"
	"storekeeper/internal/domain/catalogs/party"
	"storekeeper/internal/infrastructure/storage/postgres"
)

const partyTable = "cat_parties"

// PartyRepo implements party.Repository.
type PartyRepo struct {
	*BaseCatalogRepo[*party.Party]
}

// NewPartyRepo creates a new party repository.
func NewPartyRepo(txManager *postgres.TxManager) *PartyRepo {
	return &PartyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			partyTable,
			postgres.ExtractDBColumns[party.Party](),
			func() *party.Party { return &party.Party{} },
		),
	}
}

// FindBySupplierFlag retrieves parties filtered by supplier/customer role.
func (r *PartyRepo) FindBySupplierFlag(ctx context.Context, isSupplier bool, filter domain.ListFilter) (domain.ListResult[*party.Party], error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"is_supplier": isSupplier})

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	return r.findPage(ctx, q, filter)
}

// Ensure interface compliance.
var _ party.Repository = (*PartyRepo)(nil)
