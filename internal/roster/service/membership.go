package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// MembershipService owns organizations and their members. Materialize is
// the only path that turns an invitation into a membership.
type MembershipService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *MembershipService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Materialize inserts the membership for an accepted invitation inside tx.
// Email, name and role come from the invitation, whatever address actor
// signed in with; an unnamed invitation takes the actor's name. The actor's
// own address is kept as IdentityEmail so later invitations to it are
// recognised as an existing member. When the
// identity is already a member nothing is written and the existing
// membership is returned with created=false.
func (s *MembershipService) Materialize(
	ctx context.Context,
	tx store.Tx,
	inv domain.Invitation,
	actor domain.Identity,
) (domain.Membership, bool, error) {
	name := strings.TrimSpace(inv.Name)
	if name == "" {
		name = actor.Name
	}

	now := s.now()
	m := domain.Membership{
		ID:             idx.NewAt(now).String(),
		OrganizationID: inv.OrganizationID,
		IdentityID:     actor.ID,
		Email:          inv.Email,
		IdentityEmail:  domain.NormalizeEmail(actor.Email),
		Name:           name,
		Role:           inv.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := tx.Memberships().InsertMembershipIfAbsent(ctx, m)
	switch {
	case err == nil:
		return m, true, nil
	case errors.Is(err, store.ErrAlreadyExists):
		existing, err := tx.Memberships().GetMembership(ctx, inv.OrganizationID, actor.ID)
		if err != nil {
			return domain.Membership{}, false, err
		}
		return existing, false, nil
	default:
		return domain.Membership{}, false, err
	}
}

// CreateOrganization creates an organization with actor as its first admin.
func (s *MembershipService) CreateOrganization(
	ctx context.Context,
	name string,
	actor domain.Identity,
) (domain.Organization, domain.Membership, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || actor.ID == "" {
		return domain.Organization{}, domain.Membership{}, ErrInvalidOrganization
	}

	now := s.now()
	org := domain.Organization{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := domain.Membership{
		ID:             idx.NewAt(now).String(),
		OrganizationID: org.ID,
		IdentityID:     actor.ID,
		Email:          domain.NormalizeEmail(actor.Email),
		IdentityEmail:  domain.NormalizeEmail(actor.Email),
		Name:           actor.Name,
		Role:           domain.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		return tx.Memberships().InsertMembershipIfAbsent(ctx, admin)
	})
	if err != nil {
		log.Error("failed to create organization", slog.Any("error", err))
		return domain.Organization{}, domain.Membership{}, err
	}

	log.Info("organization created",
		slog.String("organization_id", org.ID),
		slog.String("created_by", actor.ID),
	)
	return org, admin, nil
}

// Organization returns the organization by id.
func (s *MembershipService) Organization(ctx context.Context, id string) (domain.Organization, error) {
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, ErrOrganizationNotFound
	}
	return org, err
}

// MembershipFor returns identityID's membership in organizationID, or
// ErrNotMember.
func (s *MembershipService) MembershipFor(ctx context.Context, organizationID, identityID string) (domain.Membership, error) {
	if organizationID == "" || identityID == "" {
		return domain.Membership{}, ErrNotMember
	}
	m, err := s.Store.Memberships().GetMembership(ctx, organizationID, identityID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, ErrNotMember
	}
	return m, err
}

// OrganizationsFor lists the memberships held by identityID.
func (s *MembershipService) OrganizationsFor(ctx context.Context, identityID string) ([]domain.Membership, error) {
	return s.Store.Memberships().ListMembershipsForIdentity(ctx, identityID)
}

// ListMembers returns the organization's members. Any member may list.
func (s *MembershipService) ListMembers(ctx context.Context, organizationID string, actor domain.Identity) ([]domain.Membership, error) {
	if _, err := s.MembershipFor(ctx, organizationID, actor.ID); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListMemberships(ctx, organizationID)
}

// UpdateRole changes a member's role. Only admins may change roles and the
// last admin cannot be demoted.
func (s *MembershipService) UpdateRole(
	ctx context.Context,
	organizationID, membershipID, rawRole string,
	actor domain.Identity,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return domain.Membership{}, ErrInvalidRole
	}

	var updated domain.Membership
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireAdmin(ctx, tx, organizationID, actor); err != nil {
			return err
		}

		target, err := memberInOrg(ctx, tx, organizationID, membershipID)
		if err != nil {
			return err
		}

		if target.Role.IsAdmin() && !role.IsAdmin() {
			if err := ensureAnotherAdmin(ctx, tx, organizationID); err != nil {
				return err
			}
		}

		now := s.now()
		if err := tx.Memberships().UpdateMembershipRole(ctx, target.ID, role, now); err != nil {
			return err
		}
		target.Role = role
		target.UpdatedAt = now
		updated = target
		return nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	log.Info("member role updated",
		slog.String("organization_id", organizationID),
		slog.String("membership_id", membershipID),
		slog.String("role", role.String()),
	)
	return updated, nil
}

// RemoveMember deletes a membership. Admins may remove anyone; other
// members may only remove themselves. The last admin cannot leave.
func (s *MembershipService) RemoveMember(
	ctx context.Context,
	organizationID, membershipID string,
	actor domain.Identity,
) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		self, err := tx.Memberships().GetMembership(ctx, organizationID, actor.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotMember
			}
			return err
		}

		target, err := memberInOrg(ctx, tx, organizationID, membershipID)
		if err != nil {
			return err
		}

		if target.ID != self.ID && !self.Role.IsAdmin() {
			return ErrForbidden
		}

		if target.Role.IsAdmin() {
			if err := ensureAnotherAdmin(ctx, tx, organizationID); err != nil {
				return err
			}
		}

		return tx.Memberships().DeleteMembership(ctx, target.ID)
	})
	if err != nil {
		return err
	}

	log.Info("member removed",
		slog.String("organization_id", organizationID),
		slog.String("membership_id", membershipID),
		slog.String("removed_by", actor.ID),
	)
	return nil
}

func requireAdmin(ctx context.Context, tx store.Tx, organizationID string, actor domain.Identity) error {
	m, err := tx.Memberships().GetMembership(ctx, organizationID, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	if !m.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func memberInOrg(ctx context.Context, tx store.Tx, organizationID, membershipID string) (domain.Membership, error) {
	m, err := tx.Memberships().GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrMemberNotFound
		}
		return domain.Membership{}, err
	}
	if m.OrganizationID != organizationID {
		return domain.Membership{}, ErrMemberNotFound
	}
	return m, nil
}

func ensureAnotherAdmin(ctx context.Context, tx store.Tx, organizationID string) error {
	n, err := tx.Memberships().CountMembershipsByRole(ctx, organizationID, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	return nil
}
