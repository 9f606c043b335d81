package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/notify"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/otelx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tokenPurpose domain-separates invitation tokens from any other value
// derived from the same pepper.
const tokenPurpose = "invitation"

var tracer = otelx.Tracer("github.com/aussiebroadwan/roster/internal/roster/service")

// Notifier queues outbound email. notify.Dispatcher implements it.
type Notifier interface {
	Enqueue(ctx context.Context, msg notify.Email) error
}

type CreateInvitationInput struct {
	OrganizationID string
	Email          string
	Name           string
	Role           string
	Locale         string // tag or Accept-Language value, kept for resends
}

type InvitationResult struct {
	Invitation domain.Invitation
	AcceptURL  string
	// Reused is true when an existing pending invitation was refreshed
	// instead of inserting a new one.
	Reused   bool
	Warnings []domain.Warning
}

type AcceptResult struct {
	Membership domain.Membership
	// AlreadyMember is true when no membership was inserted because the
	// identity already belonged to the organization.
	AlreadyMember bool
	Warnings      []domain.Warning
}

type RegisterInput struct {
	Token    string
	Email    string
	Password string
	Name     string
}

type RegistrationResult struct {
	Identity   domain.Identity
	Session    Session
	Membership domain.Membership
	Warnings   []domain.Warning
}

// InvitationPreview is what an unauthenticated holder of a token may see.
type InvitationPreview struct {
	Invitation   domain.Invitation
	Organization domain.Organization
	Expired      bool
}

// InvitationService is the invitation lifecycle engine. Correctness under
// concurrency comes from the store: unique indexes and conditional updates
// inside write transactions. The service holds no locks.
type InvitationService struct {
	Store       store.Store
	Memberships *MembershipService
	Identities  IdentityProvider
	Notifier    Notifier

	// BaseURL is the front-end origin; links are {BaseURL}/accept-invite?token=...
	BaseURL string
	TTL     time.Duration
	Policy  InvitePolicy

	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return domain.DefaultInvitationTTL
}

// acceptToken derives the invitation's acceptance token. Only its
// fingerprint is stored, yet resending can rebuild the same link.
func acceptToken(invitationID string) string {
	return cryptox.DeriveToken(tokenPurpose, invitationID)
}

func (s *InvitationService) acceptURL(invitationID string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	return base + "/accept-invite?token=" + url.QueryEscape(acceptToken(invitationID))
}

// Create issues an invitation, or refreshes and reuses the pending one for
// the same organization and address.
func (s *InvitationService) Create(
	ctx context.Context,
	in CreateInvitationInput,
	actor domain.Identity,
) (InvitationResult, error) {
	ctx, span := tracer.Start(ctx, "invitation.create",
		trace.WithAttributes(attribute.String("organization_id", in.OrganizationID)))
	defer span.End()
	log := slogx.FromContext(ctx)

	// 1. Validate the request
	email := domain.NormalizeEmail(in.Email)
	if in.OrganizationID == "" || !domain.ValidEmail(email) {
		return InvitationResult{}, fail(span, ErrInvalidInvitationRequest)
	}
	role := domain.RoleViewer
	if strings.TrimSpace(in.Role) != "" {
		r, err := domain.ParseRole(in.Role)
		if err != nil {
			return InvitationResult{}, fail(span, ErrInvalidRole)
		}
		role = r
	}
	name := strings.TrimSpace(in.Name)
	locale := ""
	if strings.TrimSpace(in.Locale) != "" {
		locale = notify.Locale(in.Locale)
	}

	// 2. Authorize the actor against the invite policy
	org, sender, err := s.authorize(ctx, in.OrganizationID, actor)
	if err != nil {
		return InvitationResult{}, fail(span, err)
	}
	if !s.Policy.CanGrant(sender.Role, role) {
		log.Warn("invitation role not grantable by sender",
			slog.String("sender_role", sender.Role.String()),
			slog.String("role", role.String()),
		)
		return InvitationResult{}, fail(span, ErrForbidden)
	}

	// 3. Insert or reuse inside one write transaction
	now := s.now()
	var (
		inv    domain.Invitation
		reused bool
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Memberships().GetMembershipByEmail(ctx, org.ID, email); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// An expired invitation would block the pending-uniqueness index.
		if _, err := tx.Invitations().DeleteExpiredPendingInvitation(ctx, org.ID, email, now); err != nil {
			return err
		}

		existing, err := tx.Invitations().GetPendingInvitationByEmail(ctx, org.ID, email)
		switch {
		case err == nil:
			if locale == "" {
				locale = existing.Locale
			}
			if err := tx.Invitations().RefreshPendingInvitation(ctx, existing.ID, name, role, locale, now); err != nil {
				return err
			}
			existing.Name, existing.Role, existing.Locale, existing.UpdatedAt = name, role, locale, now
			inv, reused = existing, true
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		id := idx.NewAt(now).String()
		inv = domain.Invitation{
			ID:             id,
			OrganizationID: org.ID,
			Email:          email,
			Name:           name,
			Role:           role,
			TokenHash:      cryptox.FingerprintToken(acceptToken(id)),
			InvitedBy:      actor.ID,
			Locale:         locale,
			ExpiresAt:      now.Add(s.ttl()),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// A concurrent create for the same address won; reuse its row.
		existing, gerr := s.Store.Invitations().GetPendingInvitationByEmail(ctx, org.ID, email)
		if gerr != nil {
			log.Error("failed to load concurrently created invitation", slog.Any("error", gerr))
			return InvitationResult{}, fail(span, fmt.Errorf("create invitation: %w", gerr))
		}
		inv, reused, err = existing, true, nil
	}
	if err != nil {
		if !errors.Is(err, ErrAlreadyMember) {
			log.Error("failed to create invitation", slog.Any("error", err))
		}
		return InvitationResult{}, fail(span, err)
	}

	span.SetAttributes(
		attribute.String("invitation_id", inv.ID),
		attribute.Bool("reused", reused),
	)
	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", org.ID),
		slog.String("invited_by", actor.ID),
		slog.Bool("reused", reused),
	)

	// 4. Queue the email; failure is soft
	result := InvitationResult{
		Invitation: inv,
		AcceptURL:  s.acceptURL(inv.ID),
		Reused:     reused,
	}
	if w := s.send(ctx, org, inv, actor); w != nil {
		result.Warnings = append(result.Warnings, *w)
	}
	return result, nil
}

// Resend re-queues the email for a pending, unexpired invitation. A missing,
// used or expired invitation yields false without error.
func (s *InvitationService) Resend(
	ctx context.Context,
	invitationID string,
	actor domain.Identity,
) (bool, []domain.Warning, error) {
	ctx, span := tracer.Start(ctx, "invitation.resend",
		trace.WithAttributes(attribute.String("invitation_id", invitationID)))
	defer span.End()
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, fail(span, err)
	}

	org, sender, err := s.authorize(ctx, inv.OrganizationID, actor)
	if err != nil {
		return false, nil, fail(span, err)
	}
	if !s.Policy.CanGrant(sender.Role, inv.Role) {
		return false, nil, fail(span, ErrForbidden)
	}

	if !inv.Acceptable(s.now()) {
		log.Info("resend skipped for inactive invitation",
			slog.String("invitation_id", inv.ID),
			slog.Bool("used", !inv.Pending()),
		)
		return false, nil, nil
	}

	if err := s.Store.Invitations().TouchPendingInvitation(ctx, inv.ID, s.now()); err != nil {
		if errors.Is(err, store.ErrAlreadyUsed) {
			return false, nil, nil
		}
		return false, nil, fail(span, err)
	}

	var warnings []domain.Warning
	if w := s.send(ctx, org, inv, actor); w != nil {
		warnings = append(warnings, *w)
	}
	log.Info("invitation resent", slog.String("invitation_id", inv.ID))
	return true, warnings, nil
}

// GetByToken returns the pending invitation for token, expired or not.
// Unknown and used tokens are ErrInvitationNotFound.
func (s *InvitationService) GetByToken(ctx context.Context, token string) (domain.Invitation, error) {
	if token == "" {
		return domain.Invitation{}, ErrInvitationNotFound
	}
	inv, err := s.Store.Invitations().GetPendingInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, err
	}
	return inv, nil
}

// Preview is GetByToken plus the organization, for the public landing page.
func (s *InvitationService) Preview(ctx context.Context, token string) (InvitationPreview, error) {
	ctx, span := tracer.Start(ctx, "invitation.preview")
	defer span.End()

	inv, err := s.GetByToken(ctx, token)
	if err != nil {
		return InvitationPreview{}, fail(span, err)
	}
	org, err := s.Memberships.Organization(ctx, inv.OrganizationID)
	if err != nil {
		return InvitationPreview{}, fail(span, err)
	}
	return InvitationPreview{
		Invitation:   inv,
		Organization: org,
		Expired:      inv.Expired(s.now()),
	}, nil
}

// Accept turns the invitation behind token into a membership for actor.
// Repeating a successful accept returns the same membership.
func (s *InvitationService) Accept(ctx context.Context, token string, actor domain.Identity) (AcceptResult, error) {
	ctx, span := tracer.Start(ctx, "invitation.accept",
		trace.WithAttributes(attribute.String("identity_id", actor.ID)))
	defer span.End()
	log := slogx.FromContext(ctx)

	if actor.ID == "" {
		return AcceptResult{}, fail(span, ErrInvalidCredentials)
	}
	if token == "" {
		return AcceptResult{}, fail(span, ErrInvitationNotFound)
	}

	// 1. Resolve the invitation in any state
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, fail(span, ErrInvitationNotFound)
		}
		return AcceptResult{}, fail(span, err)
	}
	span.SetAttributes(
		attribute.String("invitation_id", inv.ID),
		attribute.String("organization_id", inv.OrganizationID),
	)

	// 2. Already consumed: idempotent for the identity that consumed it
	if !inv.Pending() {
		res, err := s.resolveUsed(ctx, inv, actor)
		return res, fail(span, err)
	}

	// 3. Expired invitations are never accepted
	now := s.now()
	if inv.Expired(now) {
		log.Info("expired invitation presented", slog.String("invitation_id", inv.ID))
		return AcceptResult{}, fail(span, ErrInvitationExpired)
	}

	// 4. Materialize and consume atomically
	var (
		membership domain.Membership
		created    bool
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		membership, created, err = s.Memberships.Materialize(ctx, tx, inv, actor)
		if err != nil {
			return err
		}
		if err := tx.Invitations().MarkInvitationUsed(ctx, inv.ID, actor.ID, now); err != nil {
			return err
		}
		// The actor's own address may have a separate pending invitation
		// when they accepted a link sent elsewhere.
		_, err = tx.Invitations().ConsumePendingInvitationsForEmail(
			ctx, inv.OrganizationID, domain.NormalizeEmail(actor.Email), inv.ID, actor.ID, now)
		return err
	})
	if errors.Is(err, store.ErrAlreadyUsed) {
		// Lost the race; the transaction rolled back our insert.
		log.Info("invitation consumed concurrently", slog.String("invitation_id", inv.ID))
		res, err := s.resolveUsed(ctx, inv, actor)
		return res, fail(span, err)
	}
	if err != nil {
		log.Error("failed to accept invitation", slog.Any("error", err))
		return AcceptResult{}, fail(span, err)
	}

	// 5. Report an address mismatch without refusing
	result := AcceptResult{Membership: membership, AlreadyMember: !created}
	if !domain.EmailsMatch(actor.Email, inv.Email) {
		log.Warn("invitation accepted by a different address",
			slog.String("invitation_id", inv.ID),
			slog.String("identity_id", actor.ID),
		)
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:    domain.WarningEmailMismatch,
			Message: "the invitation was sent to " + inv.Email + " but accepted as " + domain.NormalizeEmail(actor.Email),
		})
	}

	span.SetAttributes(attribute.Bool("membership_created", created))
	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", inv.OrganizationID),
		slog.String("identity_id", actor.ID),
		slog.Bool("membership_created", created),
	)
	return result, nil
}

// resolveUsed answers an accept against a consumed invitation. Only the
// identity that consumed it gets its membership back; anyone else, members
// included, gets ErrAlreadyUsedByOther. inv may predate the consuming
// write, so used_by is read again when it is still empty.
func (s *InvitationService) resolveUsed(ctx context.Context, inv domain.Invitation, actor domain.Identity) (AcceptResult, error) {
	if inv.UsedBy == "" {
		fresh, err := s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return AcceptResult{}, ErrInvitationNotFound
			}
			return AcceptResult{}, err
		}
		inv = fresh
	}
	if inv.UsedBy != actor.ID {
		return AcceptResult{}, ErrAlreadyUsedByOther
	}

	m, err := s.Store.Memberships().GetMembership(ctx, inv.OrganizationID, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Consumed by this identity, which has since left.
			return AcceptResult{}, ErrAlreadyUsedByOther
		}
		return AcceptResult{}, err
	}
	return AcceptResult{Membership: m, AlreadyMember: true}, nil
}

// Delete removes a pending invitation. Missing or used invitations yield
// false without error.
func (s *InvitationService) Delete(ctx context.Context, invitationID string, actor domain.Identity) (bool, error) {
	ctx, span := tracer.Start(ctx, "invitation.delete",
		trace.WithAttributes(attribute.String("invitation_id", invitationID)))
	defer span.End()
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fail(span, err)
	}

	_, sender, err := s.authorize(ctx, inv.OrganizationID, actor)
	if err != nil {
		return false, fail(span, err)
	}
	if !s.Policy.CanGrant(sender.Role, inv.Role) {
		return false, fail(span, ErrForbidden)
	}

	if err := s.Store.Invitations().DeletePendingInvitation(ctx, inv.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fail(span, err)
	}

	log.Info("invitation deleted",
		slog.String("invitation_id", inv.ID),
		slog.String("deleted_by", actor.ID),
	)
	return true, nil
}

// ListPending returns the organization's pending, unexpired invitations,
// newest first. Any member may list.
func (s *InvitationService) ListPending(ctx context.Context, organizationID string, actor domain.Identity) ([]domain.Invitation, error) {
	if _, err := s.Memberships.MembershipFor(ctx, organizationID, actor.ID); err != nil {
		return nil, err
	}

	all, err := s.Store.Invitations().ListPendingInvitations(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]domain.Invitation, 0, len(all))
	for _, inv := range all {
		if inv.Acceptable(now) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// RegisterAndAccept creates an identity, signs it in and accepts the
// invitation. If acceptance fails after the identity exists the identity is
// kept and a *PartialRegistrationError is returned; the caller can sign in
// and call Accept again.
func (s *InvitationService) RegisterAndAccept(ctx context.Context, in RegisterInput) (RegistrationResult, error) {
	ctx, span := tracer.Start(ctx, "invitation.register_and_accept")
	defer span.End()
	log := slogx.FromContext(ctx)

	// 1. The invitation must be acceptable before any identity is created
	if in.Token == "" {
		return RegistrationResult{}, fail(span, ErrInvitationNotFound)
	}
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(in.Token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RegistrationResult{}, fail(span, ErrInvitationNotFound)
		}
		return RegistrationResult{}, fail(span, err)
	}
	if !inv.Pending() {
		return RegistrationResult{}, fail(span, ErrAlreadyUsedByOther)
	}
	if inv.Expired(s.now()) {
		return RegistrationResult{}, fail(span, ErrInvitationExpired)
	}

	email := in.Email
	if strings.TrimSpace(email) == "" {
		email = inv.Email
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = inv.Name
	}

	// 2. Create the identity; an existing account is never modified
	identity, err := s.Identities.CreateIdentity(ctx, NewIdentity{
		Email:    email,
		Password: in.Password,
		Name:     name,
		// Holding the token proves access to the invited inbox.
		EmailVerified: domain.EmailsMatch(email, inv.Email),
	})
	if err != nil {
		return RegistrationResult{}, fail(span, err)
	}

	// 3. Sign in, then accept. Failures from here on leave the identity.
	session, err := s.Identities.Authenticate(ctx, email, in.Password)
	if err != nil {
		log.Warn("registered identity could not sign in",
			slog.String("identity_id", identity.ID),
			slog.Any("error", err),
		)
		return RegistrationResult{Identity: identity}, fail(span, &PartialRegistrationError{Identity: identity, Err: err})
	}

	accepted, err := s.Accept(ctx, in.Token, session.Identity)
	if err != nil {
		log.Warn("registered identity could not accept invitation",
			slog.String("identity_id", identity.ID),
			slog.Any("error", err),
		)
		return RegistrationResult{Identity: identity, Session: session},
			fail(span, &PartialRegistrationError{Identity: identity, Err: err})
	}

	return RegistrationResult{
		Identity:   identity,
		Session:    session,
		Membership: accepted.Membership,
		Warnings:   accepted.Warnings,
	}, nil
}

// authorize checks actor may manage invitations for the organization and
// returns the organization and the actor's membership.
func (s *InvitationService) authorize(
	ctx context.Context,
	organizationID string,
	actor domain.Identity,
) (domain.Organization, domain.Membership, error) {
	org, err := s.Memberships.Organization(ctx, organizationID)
	if err != nil {
		return domain.Organization{}, domain.Membership{}, err
	}
	m, err := s.Memberships.MembershipFor(ctx, organizationID, actor.ID)
	if err != nil {
		return domain.Organization{}, domain.Membership{}, err
	}
	if !s.Policy.CanManageInvitations(m.Role) {
		return domain.Organization{}, domain.Membership{}, ErrForbidden
	}
	return org, m, nil
}

// send renders and queues the invitation email. A queueing failure becomes
// a warning; delivery errors are the dispatcher's to log.
func (s *InvitationService) send(
	ctx context.Context,
	org domain.Organization,
	inv domain.Invitation,
	sender domain.Identity,
) *domain.Warning {
	if s.Notifier == nil {
		return nil
	}

	inviter := sender.Name
	if inviter == "" {
		inviter = sender.Email
	}
	msg := notify.RenderInvitation(notify.Invitation{
		To:               inv.Email,
		InviteeName:      inv.Name,
		OrganizationName: org.Name,
		InviterName:      inviter,
		Role:             inv.Role.String(),
		AcceptURL:        s.acceptURL(inv.ID),
		ExpiresAt:        inv.ExpiresAt,
		Locale:           inv.Locale,
	})

	if err := s.Notifier.Enqueue(ctx, msg); err != nil {
		slogx.FromContext(ctx).Warn("failed to queue invitation email",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return &domain.Warning{
			Code:    domain.WarningNotificationFailed,
			Message: "the invitation was saved but the email could not be queued",
		}
	}
	return nil
}

// fail records err on span and returns it unchanged.
func fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
