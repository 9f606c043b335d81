package sqlite

import (
	"context"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type organizationsRepo struct {
	q *gen.Queries
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	return mapConstraint(r.q.CreateOrganization(ctx, gen.CreateOrganizationParams{
		ID:        o.ID,
		Name:      o.Name,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt.UTC(),
		UpdatedAt: o.UpdatedAt.UTC(),
	}))
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row, err := r.q.GetOrganizationByID(ctx, id)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return mapOrganization(row), nil
}
