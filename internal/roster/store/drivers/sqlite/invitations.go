package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Name:           inv.Name,
		Role:           inv.Role.String(),
		TokenHash:      inv.TokenHash,
		InvitedBy:      inv.InvitedBy,
		Locale:         inv.Locale,
		ExpiresAt:      inv.ExpiresAt.UTC(),
		CreatedAt:      inv.CreatedAt.UTC(),
		UpdatedAt:      inv.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row, err := r.q.GetPendingInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetPendingInvitationByEmail(
	ctx context.Context,
	organizationID, email string,
) (domain.Invitation, error) {
	row, err := r.q.GetPendingInvitationByEmail(ctx, gen.GetPendingInvitationByEmailParams{
		OrganizationID: organizationID,
		Email:          email,
	})
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) ListPendingInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.q.ListPendingInvitations(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInvitation(row))
	}
	return out, nil
}

func (r *invitationsRepo) RefreshPendingInvitation(
	ctx context.Context,
	id, name string,
	role domain.Role,
	locale string,
	at time.Time,
) error {
	n, err := r.q.RefreshPendingInvitation(ctx, gen.RefreshPendingInvitationParams{
		Name:      name,
		Role:      role.String(),
		Locale:    locale,
		UpdatedAt: at.UTC(),
		ID:        id,
	})
	return conditional(n, err)
}

func (r *invitationsRepo) TouchPendingInvitation(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.TouchPendingInvitation(ctx, gen.TouchPendingInvitationParams{
		UpdatedAt: at.UTC(),
		ID:        id,
	})
	return conditional(n, err)
}

func (r *invitationsRepo) MarkInvitationUsed(ctx context.Context, id, usedBy string, at time.Time) error {
	n, err := r.q.MarkInvitationUsed(ctx, gen.MarkInvitationUsedParams{
		UsedAt:    mapTimeNull(at),
		UsedBy:    mapStringNull(usedBy),
		UpdatedAt: at.UTC(),
		ID:        id,
	})
	return conditional(n, err)
}

func (r *invitationsRepo) ConsumePendingInvitationsForEmail(
	ctx context.Context,
	organizationID, email, exceptID, usedBy string,
	at time.Time,
) (int64, error) {
	return r.q.ConsumePendingInvitationsForEmail(ctx, gen.ConsumePendingInvitationsForEmailParams{
		UsedAt:         mapTimeNull(at),
		UsedBy:         mapStringNull(usedBy),
		UpdatedAt:      at.UTC(),
		OrganizationID: organizationID,
		Email:          email,
		ID:             exceptID,
	})
}

func (r *invitationsRepo) DeletePendingInvitation(ctx context.Context, id string) error {
	n, err := r.q.DeletePendingInvitation(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) DeleteExpiredPendingInvitation(
	ctx context.Context,
	organizationID, email string,
	now time.Time,
) (int64, error) {
	return r.q.DeleteExpiredPendingInvitation(ctx, gen.DeleteExpiredPendingInvitationParams{
		OrganizationID: organizationID,
		Email:          email,
		ExpiresAt:      now.UTC(),
	})
}

func (r *invitationsRepo) PurgeInvitations(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.PurgeInvitations(ctx, gen.PurgeInvitationsParams{
		ExpiresAt: cutoff.UTC(),
		UsedAt:    mapTimeNull(cutoff),
	})
}

// conditional maps a zero-row conditional update on a pending invitation to
// store.ErrAlreadyUsed.
func conditional(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyUsed
	}
	return nil
}
