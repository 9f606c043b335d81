package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, c domain.Credential) error {
	return mapConstraint(r.q.CreateIdentity(ctx, gen.CreateIdentityParams{
		ID:               c.ID,
		Email:            c.Email,
		Name:             c.Name,
		PasswordHash:     c.PasswordHash,
		EmailConfirmedAt: mapOptionalTime(c.EmailConfirmed),
		CreatedAt:        c.CreatedAt.UTC(),
		UpdatedAt:        c.UpdatedAt.UTC(),
	}))
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Credential, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Credential, error) {
	row, err := r.q.GetIdentityByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) ConfirmIdentityEmail(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.ConfirmIdentityEmail(ctx, gen.ConfirmIdentityEmailParams{
		EmailConfirmedAt: mapTimeNull(at),
		UpdatedAt:        at.UTC(),
		ID:               id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
