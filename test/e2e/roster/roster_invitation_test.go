package roster_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

// TestInviteRegisterAndJoin covers the new-user path:
// 1. Admin creates an organization and invites an address
// 2. The invitee previews the invitation from the link
// 3. The invitee registers from the link and joins with the invited role
// 4. The invitation is no longer pending
func TestInviteRegisterAndJoin(t *testing.T) {
	baseURL, cleanup := setupRosterContainer(t)
	defer cleanup()

	client := rostersdk.NewClient(baseURL)
	admin, orgID := setupOrganization(t, client)

	inv, err := admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{
		Email: "New.User@Example.com",
		Name:  "New User",
		Role:  "editor",
	})
	require.NoError(t, err)
	require.Equal(t, "new.user@example.com", inv.Invitation.Email)
	require.Empty(t, inv.Warnings)
	token := acceptToken(t, inv.AcceptURL)

	preview, err := client.LookupInvitation(t.Context(), token)
	require.NoError(t, err)
	require.Equal(t, "Acme", preview.OrganizationName)
	require.Equal(t, "editor", preview.Invitation.Role)
	require.False(t, preview.Expired)

	reg, err := client.RegisterAndAccept(t.Context(), rostersdk.RegisterRequest{
		Token:    token,
		Password: userPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "editor", reg.Membership.Role)
	require.Equal(t, "New User", reg.Membership.Name)
	require.Equal(t, "new.user@example.com", reg.Session.Identity.Email)

	// The new account can sign in with its password.
	user, err := client.Login(t.Context(), "new.user@example.com", userPassword)
	require.NoError(t, err)

	mine, err := user.ListOrganizations(t.Context())
	require.NoError(t, err)
	require.Len(t, mine.Memberships, 1)
	require.Equal(t, orgID, mine.Memberships[0].OrganizationID)

	pending, err := admin.ListInvitations(t.Context(), orgID)
	require.NoError(t, err)
	require.Empty(t, pending.Invitations)
}

// TestInviteExistingUserAccepts covers the signed-in path, including
// repeated invitations and idempotent acceptance.
func TestInviteExistingUserAccepts(t *testing.T) {
	baseURL, cleanup := setupRosterContainer(t)
	defer cleanup()

	client := rostersdk.NewClient(baseURL)
	admin, orgID := setupOrganization(t, client)
	bob := signupAndLogin(t, client, "bob@example.com", userPassword)

	first, err := admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	second, err := admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	require.True(t, second.Reused)
	require.Equal(t, first.Invitation.ID, second.Invitation.ID)
	require.Equal(t, first.AcceptURL, second.AcceptURL)

	resent, err := admin.ResendInvitation(t.Context(), first.Invitation.ID)
	require.NoError(t, err)
	require.True(t, resent.Resent)

	token := acceptToken(t, first.AcceptURL)
	res, err := bob.AcceptInvitation(t.Context(), token)
	require.NoError(t, err)
	require.False(t, res.AlreadyMember)
	require.Equal(t, "viewer", res.Membership.Role)

	again, err := bob.AcceptInvitation(t.Context(), token)
	require.NoError(t, err)
	require.True(t, again.AlreadyMember)
	require.Equal(t, res.Membership.ID, again.Membership.ID)

	resent, err = admin.ResendInvitation(t.Context(), first.Invitation.ID)
	require.NoError(t, err)
	require.False(t, resent.Resent, "used invitations are not resent")

	_, err = admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{Email: "bob@example.com"})
	require.ErrorIs(t, err, rostersdk.ErrAlreadyMember)
}

// TestConcurrentAcceptHasOneWinner races two accounts for one invitation.
func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	baseURL, cleanup := setupRosterContainer(t)
	defer cleanup()

	client := rostersdk.NewClient(baseURL)
	admin, orgID := setupOrganization(t, client)

	inv, err := admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{Email: "shared@example.com"})
	require.NoError(t, err)
	token := acceptToken(t, inv.AcceptURL)

	sessions := []*rostersdk.Session{
		signupAndLogin(t, client, "one@example.com", userPassword),
		signupAndLogin(t, client, "two@example.com", userPassword),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(sessions))
	for i, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.AcceptInvitation(t.Context(), token)
		}()
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, rostersdk.ErrInvitationUsed):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, lost)

	members, err := admin.ListMembers(t.Context(), orgID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)
}

func TestDeleteInvitation(t *testing.T) {
	baseURL, cleanup := setupRosterContainer(t)
	defer cleanup()

	client := rostersdk.NewClient(baseURL)
	admin, orgID := setupOrganization(t, client)

	inv, err := admin.CreateInvitation(t.Context(), orgID, rostersdk.CreateInvitationRequest{Email: "gone@example.com"})
	require.NoError(t, err)

	require.NoError(t, admin.DeleteInvitation(t.Context(), inv.Invitation.ID))

	_, err = client.LookupInvitation(t.Context(), acceptToken(t, inv.AcceptURL))
	require.ErrorIs(t, err, rostersdk.ErrNotFound)

	err = admin.DeleteInvitation(t.Context(), inv.Invitation.ID)
	require.ErrorIs(t, err, rostersdk.ErrNotFound)
}
