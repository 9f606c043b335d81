package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// NewIdentity is the input to IdentityProvider.CreateIdentity.
type NewIdentity struct {
	Email    string
	Password string
	Name     string

	// EmailVerified marks the address as confirmed at creation, e.g. when
	// the caller proved inbox access by presenting an invitation token.
	EmailVerified bool
}

// Session is an authenticated session issued by the identity provider.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	Identity    domain.Identity
}

// IdentityProvider is the boundary to whatever owns credentials. The
// lifecycle engine only needs to create an identity and sign it in.
type IdentityProvider interface {
	// CreateIdentity returns ErrIdentityExists when the email is taken. It
	// never overwrites an existing identity's password.
	CreateIdentity(ctx context.Context, in NewIdentity) (domain.Identity, error)

	// Authenticate returns ErrInvalidCredentials or ErrEmailNotConfirmed.
	Authenticate(ctx context.Context, email, password string) (Session, error)
}

// LocalIdentityProvider keeps credentials in the roster database, hashes
// passwords with argon2id and issues EdDSA session tokens.
type LocalIdentityProvider struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TTL      time.Duration

	// RequireConfirmedEmail rejects sign-in for identities whose address was
	// never confirmed.
	RequireConfirmedEmail bool

	Now func() time.Time
}

// dummyHash is compared against when the email is unknown so both branches
// of Authenticate do the same argon2 work.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("roster-timing-equalizer")
	if err != nil {
		return ""
	}
	return h
})

func (p *LocalIdentityProvider) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func (p *LocalIdentityProvider) CreateIdentity(ctx context.Context, in NewIdentity) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	email := domain.NormalizeEmail(in.Email)
	if !domain.ValidEmail(email) {
		return domain.Identity{}, ErrInvalidRegistration
	}
	if err := cryptox.ValidatePassword(in.Password); err != nil {
		return domain.Identity{}, errors.Join(ErrInvalidRegistration, err)
	}

	// 2. Hash the password
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Identity{}, err
	}

	// 3. Persist; an existing email is never overwritten
	now := p.now()
	cred := domain.Credential{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.EmailVerified {
		cred.EmailConfirmed = &now
	}

	if err := p.Store.Identities().CreateIdentity(ctx, cred); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("sign-up for existing email refused", slog.String("email", email))
			return domain.Identity{}, ErrIdentityExists
		}
		log.Error("failed to create identity", slog.Any("error", err))
		return domain.Identity{}, err
	}

	log.Info("identity created", slog.String("identity_id", cred.ID))
	return cred.Identity(), nil
}

func (p *LocalIdentityProvider) Authenticate(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	cred, err := p.Store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash())
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to load identity", slog.Any("error", err))
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		log.Warn("failed sign-in", slog.String("identity_id", cred.ID))
		return Session{}, ErrInvalidCredentials
	}

	if p.RequireConfirmedEmail && cred.EmailConfirmed == nil {
		return Session{}, ErrEmailNotConfirmed
	}

	return p.issue(cred.Identity())
}

func (p *LocalIdentityProvider) issue(id domain.Identity) (Session, error) {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	now := p.now()
	claims := jwtx.NewSessionClaims(id.ID, id.Email, id.Name, ttl, p.Issuer, p.Audience, now)

	token, err := p.Signer.Sign(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		Identity:    id,
	}, nil
}
