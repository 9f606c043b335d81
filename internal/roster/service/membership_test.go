package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizationMakesCreatorAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.memberships.MembershipFor(ctx, f.org.ID, f.admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, m.Role)
	require.Equal(t, "admin@example.com", m.Email)

	_, _, err = f.memberships.CreateOrganization(ctx, "   ", f.admin)
	require.ErrorIs(t, err, ErrInvalidOrganization)

	orgs, err := f.memberships.OrganizationsFor(ctx, f.admin.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, f.org.ID, orgs[0].OrganizationID)
}

func TestUpdateRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.identity(t, "promote@example.com", "Pia")
	m := f.member(t, u, "viewer")

	t.Run("non-admins cannot change roles", func(t *testing.T) {
		_, err := f.memberships.UpdateRole(ctx, f.org.ID, m.ID, "editor", u)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := f.memberships.UpdateRole(ctx, f.org.ID, m.ID, "owner", f.admin)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("admin promotes", func(t *testing.T) {
		updated, err := f.memberships.UpdateRole(ctx, f.org.ID, m.ID, "admin", f.admin)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("member from another organization", func(t *testing.T) {
		other, _, err := f.memberships.CreateOrganization(ctx, "Other", u)
		require.NoError(t, err)
		_, err = f.memberships.UpdateRole(ctx, other.ID, m.ID, "viewer", u)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestLastAdminIsProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	self, err := f.memberships.MembershipFor(ctx, f.org.ID, f.admin.ID)
	require.NoError(t, err)

	_, err = f.memberships.UpdateRole(ctx, f.org.ID, self.ID, "viewer", f.admin)
	require.ErrorIs(t, err, ErrLastAdmin)

	err = f.memberships.RemoveMember(ctx, f.org.ID, self.ID, f.admin)
	require.ErrorIs(t, err, ErrLastAdmin)

	// With a second admin the first may step down.
	u := f.identity(t, "deputy@example.com", "Dep")
	f.member(t, u, "admin")

	demoted, err := f.memberships.UpdateRole(ctx, f.org.ID, self.ID, "editor", f.admin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleEditor, demoted.Role)
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.identity(t, "a@example.com", "A")
	b := f.identity(t, "b@example.com", "B")
	ma := f.member(t, a, "editor")
	mb := f.member(t, b, "viewer")

	err := f.memberships.RemoveMember(ctx, f.org.ID, mb.ID, a)
	require.ErrorIs(t, err, ErrForbidden)

	// Members may leave on their own.
	require.NoError(t, f.memberships.RemoveMember(ctx, f.org.ID, ma.ID, a))
	_, err = f.memberships.MembershipFor(ctx, f.org.ID, a.ID)
	require.ErrorIs(t, err, ErrNotMember)

	require.NoError(t, f.memberships.RemoveMember(ctx, f.org.ID, mb.ID, f.admin))
	err = f.memberships.RemoveMember(ctx, f.org.ID, mb.ID, f.admin)
	require.ErrorIs(t, err, ErrMemberNotFound)

	members, err := f.memberships.ListMembers(ctx, f.org.ID, f.admin)
	require.NoError(t, err)
	require.Len(t, members, 1)

	// A removed member can be invited again.
	_, token := f.invite(t, "b@example.com", "viewer")
	res, err := f.invitations.Accept(ctx, token, b)
	require.NoError(t, err)
	require.False(t, res.AlreadyMember)
}
