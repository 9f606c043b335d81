package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]domain.Role{
		"admin":     domain.RoleAdmin,
		" Editor ":  domain.RoleEditor,
		"moderator": domain.RoleEditor,
		"viewer":    domain.RoleViewer,
		"MEMBER":    domain.RoleViewer,
	}
	for in, want := range cases {
		got, err := domain.ParseRole(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
		require.True(t, got.Valid())
	}

	_, err := domain.ParseRole("owner")
	require.ErrorIs(t, err, domain.ErrUnknownRole)
	require.False(t, domain.Role("owner").Valid())
}

func TestInvitationState(t *testing.T) {
	now := time.Now()
	inv := domain.Invitation{ExpiresAt: now.Add(time.Hour)}
	require.True(t, inv.Pending())
	require.False(t, inv.Expired(now))
	require.True(t, inv.Acceptable(now))

	require.True(t, inv.Expired(now.Add(2*time.Hour)))
	require.False(t, inv.Acceptable(now.Add(2*time.Hour)))

	used := now
	inv.UsedAt = &used
	require.False(t, inv.Pending())
	require.False(t, inv.Expired(now.Add(2*time.Hour)))
	require.False(t, inv.Acceptable(now))
}

func TestEmailHelpers(t *testing.T) {
	require.Equal(t, "alice@example.com", domain.NormalizeEmail("  Alice@Example.COM "))
	require.True(t, domain.EmailsMatch("ALICE@example.com", "alice@EXAMPLE.com"))
	require.False(t, domain.EmailsMatch("alice@example.com", "bob@example.com"))

	require.True(t, domain.ValidEmail("a@b"))
	require.False(t, domain.ValidEmail("ab"))
	require.False(t, domain.ValidEmail("@b"))
	require.False(t, domain.ValidEmail("a@"))
	require.False(t, domain.ValidEmail("a b@c"))
	require.False(t, domain.ValidEmail("a@b@c"))

	require.True(t, domain.ValidEmail("first.last+tag@sub.example.com"))
	require.False(t, domain.ValidEmail("Alice <alice@example.com>"))
	require.False(t, domain.ValidEmail("alice@example.com (Alice)"))
	require.False(t, domain.ValidEmail(" alice@example.com"))
	require.False(t, domain.ValidEmail("alice..x@example.com"))
	require.False(t, domain.ValidEmail("alice@example.com."))
	require.False(t, domain.ValidEmail("alice@example.com\r\nBcc: evil@example.com"))
}
