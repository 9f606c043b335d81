package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingPurgesOutsideRetention(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hk := NewHousekeepingService(f.store, slogx.Discard(), time.Hour, 0)
	hk.Now = f.clock.Now
	require.Equal(t, DefaultInvitationRetention, hk.Retention)

	expired, expiredToken := f.invite(t, "expired@example.com", "viewer")
	u := f.identity(t, "used@example.com", "Ursula")
	_, usedToken := f.invite(t, "used@example.com", "viewer")
	_, err := f.invitations.Accept(ctx, usedToken, u)
	require.NoError(t, err)

	// Just past expiry: still inside the retention window.
	f.clock.Advance(domain.DefaultInvitationTTL + time.Hour)
	require.Zero(t, hk.Cleanup(ctx))
	_, err = f.invitations.Accept(ctx, expiredToken, u)
	require.ErrorIs(t, err, ErrInvitationExpired)

	fresh, _ := f.invite(t, "fresh@example.com", "viewer")

	f.clock.Advance(DefaultInvitationRetention)
	require.Equal(t, int64(2), hk.Cleanup(ctx))

	_, err = f.store.Invitations().GetInvitationByID(ctx, expired.Invitation.ID)
	require.Error(t, err)
	_, err = f.store.Invitations().GetInvitationByID(ctx, fresh.Invitation.ID)
	require.NoError(t, err)

	// Memberships survive the purge.
	_, err = f.memberships.MembershipFor(ctx, f.org.ID, u.ID)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)
	hk := NewHousekeepingService(f.store, slog.New(slog.DiscardHandler), 0, time.Hour)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}

func TestHousekeepingDeletesExpiredSigningKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hk := NewHousekeepingService(f.store, slogx.Discard(), time.Hour, time.Hour)
	hk.Now = f.clock.Now

	now := f.clock.Now()
	for kid, ttl := range map[string]time.Duration{"roster-short": time.Hour, "roster-long": 48 * time.Hour} {
		require.NoError(t, f.store.SigningKeys().CreateSigningKey(ctx, domain.SigningKey{
			ID:                  idx.New().String(),
			Kid:                 kid,
			Algorithm:           jwtx.AlgorithmEdDSA,
			PrivateKeyEncrypted: []byte("sealed"),
			CreatedAt:           now,
			ExpiresAt:           now.Add(ttl),
		}))
	}

	f.clock.Advance(2 * time.Hour)
	hk.Cleanup(ctx)

	keys, err := f.store.SigningKeys().ListSigningKeys(ctx, now)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, "roster-long", keys[0].Kid)
}
