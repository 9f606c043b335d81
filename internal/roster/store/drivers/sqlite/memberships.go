package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type membershipsRepo struct {
	q *gen.Queries
}

func (r *membershipsRepo) InsertMembershipIfAbsent(ctx context.Context, m domain.Membership) error {
	n, err := r.q.InsertMembershipIfAbsent(ctx, gen.InsertMembershipIfAbsentParams{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		IdentityID:     m.IdentityID,
		Email:          m.Email,
		IdentityEmail:  m.IdentityEmail,
		Name:           m.Name,
		Role:           m.Role.String(),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	})
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *membershipsRepo) GetMembership(ctx context.Context, organizationID, identityID string) (domain.Membership, error) {
	row, err := r.q.GetMembership(ctx, gen.GetMembershipParams{
		OrganizationID: organizationID,
		IdentityID:     identityID,
	})
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, id string) (domain.Membership, error) {
	row, err := r.q.GetMembershipByID(ctx, id)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) GetMembershipByEmail(ctx context.Context, organizationID, email string) (domain.Membership, error) {
	email = domain.NormalizeEmail(email)
	row, err := r.q.GetMembershipByEmail(ctx, gen.GetMembershipByEmailParams{
		OrganizationID: organizationID,
		Email:          email,
		IdentityEmail:  email,
	})
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) ListMemberships(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	rows, err := r.q.ListMemberships(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapMemberships(rows), nil
}

func (r *membershipsRepo) ListMembershipsForIdentity(ctx context.Context, identityID string) ([]domain.Membership, error) {
	rows, err := r.q.ListMembershipsForIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return mapMemberships(rows), nil
}

func (r *membershipsRepo) CountMembershipsByRole(ctx context.Context, organizationID string, role domain.Role) (int64, error) {
	return r.q.CountMembershipsByRole(ctx, gen.CountMembershipsByRoleParams{
		OrganizationID: organizationID,
		Role:           role.String(),
	})
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, id string, role domain.Role, at time.Time) error {
	n, err := r.q.UpdateMembershipRole(ctx, gen.UpdateMembershipRoleParams{
		Role:      role.String(),
		UpdatedAt: at.UTC(),
		ID:        id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, id string) error {
	n, err := r.q.DeleteMembership(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapMemberships(rows []gen.Membership) []domain.Membership {
	out := make([]domain.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMembership(row))
	}
	return out
}
