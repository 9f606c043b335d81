package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "roster", cfg.Issuer)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
	require.Equal(t, 7*24*time.Hour, cfg.InvitationTTL)
	require.Equal(t, 30*24*time.Hour, cfg.InvitationRetention)
	require.Equal(t, "admins", cfg.InvitePolicy)
	require.Equal(t, 587, cfg.SMTP.Port)
	require.Empty(t, cfg.SMTP.Host)
	require.Equal(t, "opportunistic", cfg.SMTP.TLSPolicy)
	require.Equal(t, "master.key", cfg.MasterKeyFile)
	require.Equal(t, 30*24*time.Hour, cfg.SigningKeyTTL)
	require.Equal(t, 7*24*time.Hour, cfg.SigningKeyGrace)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimits)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ROSTER_BASE_URL", "https://app.example.com")
	t.Setenv("ROSTER_INVITATION_TTL", "48h")
	t.Setenv("ROSTER_INVITE_POLICY", "members")
	t.Setenv("ROSTER_SMTP_HOST", "mail.example.com")
	t.Setenv("ROSTER_NOTIFY_WORKERS", "4")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://app.example.com", cfg.BaseURL)
	require.Equal(t, 48*time.Hour, cfg.InvitationTTL)
	require.Equal(t, "members", cfg.InvitePolicy)
	require.Equal(t, "mail.example.com", cfg.SMTP.Host)
	require.Equal(t, 4, cfg.Notify.Workers)
	require.Equal(t, 9090, cfg.Port)

	def := httpx.DefaultRateLimits()
	require.Equal(t, 50, cfg.RateLimits.Strict.Requests)
	require.Equal(t, def.Strict.Window, cfg.RateLimits.Strict.Window)
	require.Equal(t, def.Public, cfg.RateLimits.Public)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"relative base url", "ROSTER_BASE_URL", "/accept"},
		{"zero ttl", "ROSTER_INVITATION_TTL", "0s"},
		{"port out of range", "PORT", "70000"},
		{"unparsable duration", "SHUTDOWN_GRACE_PERIOD", "soon"},
		{"zero signing key ttl", "ROSTER_SIGNING_KEY_TTL", "0s"},
		{"grace shorter than sessions", "ROSTER_SIGNING_KEY_GRACE", "1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfigRejectsInvalidSMTP(t *testing.T) {
	t.Setenv("ROSTER_SMTP_HOST", "mail.example.com")

	t.Run("tls policy", func(t *testing.T) {
		t.Setenv("ROSTER_SMTP_TLS_POLICY", "sometimes")
		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("from address", func(t *testing.T) {
		t.Setenv("ROSTER_SMTP_FROM", "not an address")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.InvitePolicy = "everyone"

	_, err = New(cfg)
	require.Error(t, err)
}
