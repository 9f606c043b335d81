package app

import (
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/notify"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Issuer       string `env:"ROSTER_ISSUER"        envDefault:"roster"`                // issuer claim for session tokens
	BaseURL      string `env:"ROSTER_BASE_URL"      envDefault:"http://localhost:8080"` // prefix of acceptance links
	DatabaseFile string `env:"ROSTER_DATABASE_FILE" envDefault:"roster.db"`
	PepperFile   string `env:"ROSTER_PEPPER_FILE"   envDefault:"pepper"`

	// MasterKeyFile seals signing keys at rest. Generated on first start.
	MasterKeyFile   string        `env:"ROSTER_MASTER_KEY_FILE"   envDefault:"master.key"`
	SigningKeyTTL   time.Duration `env:"ROSTER_SIGNING_KEY_TTL"   envDefault:"720h"` // how long a key signs
	SigningKeyGrace time.Duration `env:"ROSTER_SIGNING_KEY_GRACE" envDefault:"168h"` // verify-only after that

	InvitationTTL       time.Duration `env:"ROSTER_INVITATION_TTL"       envDefault:"168h"`
	InvitationRetention time.Duration `env:"ROSTER_INVITATION_RETENTION" envDefault:"720h"`
	InvitePolicy        string        `env:"ROSTER_INVITE_POLICY"        envDefault:"admins"` // admins or members

	// RequireConfirmedEmail refuses sign-in until the address is confirmed.
	RequireConfirmedEmail bool `env:"ROSTER_REQUIRE_CONFIRMED_EMAIL"`

	SMTP   notify.SMTPConfig       `envPrefix:"ROSTER_SMTP_"`   // mail is logged when Host is empty
	Notify notify.DispatcherConfig `envPrefix:"ROSTER_NOTIFY_"` // queue size, workers and send timeout

	OtelEndpoint string `env:"ROSTER_OTEL_ENDPOINT"` // OTLP/HTTP collector, e.g. http://otel:4318
	OtelEnabled  bool   `env:"ROSTER_OTEL_ENABLED"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// RateLimits start from httpx.DefaultRateLimits; RATELIMIT_STRICT_REQUESTS
	// and friends override single fields.
	RateLimits httpx.RateLimitProfiles `envPrefix:"RATELIMIT_"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	cfg.RateLimits = cfg.RateLimits.Normalize()
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ROSTER_BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.InvitationTTL <= 0 {
		return fmt.Errorf("ROSTER_INVITATION_TTL must be positive")
	}
	if c.SigningKeyTTL <= 0 || c.SigningKeyGrace <= 0 {
		return fmt.Errorf("ROSTER_SIGNING_KEY_TTL and ROSTER_SIGNING_KEY_GRACE must be positive")
	}
	// A key stops signing before the sessions it signed expire.
	if c.SigningKeyGrace < jwtx.DefaultSessionTTL {
		return fmt.Errorf("ROSTER_SIGNING_KEY_GRACE must be at least the session lifetime (%s)", jwtx.DefaultSessionTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.SMTP.Host != "" {
		if err := c.SMTP.Validate(); err != nil {
			return fmt.Errorf("ROSTER_SMTP_*: %w", err)
		}
	}
	return nil
}
