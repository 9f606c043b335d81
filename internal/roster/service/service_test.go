package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/notify"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://roster.test"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "roster-service-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now().UTC().Truncate(time.Second)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// outbox records queued emails and can be told to refuse them.
type outbox struct {
	mu   sync.Mutex
	sent []notify.Email
	err  error
}

func (o *outbox) Enqueue(_ context.Context, msg notify.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) emails() []notify.Email {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notify.Email(nil), o.sent...)
}

type fixture struct {
	store       *sqlite.Store
	clock       *testClock
	outbox      *outbox
	keys        *jwtx.KeyManager
	identities  *LocalIdentityProvider
	memberships *MembershipService
	invitations *InvitationService

	admin domain.Identity
	org   domain.Organization
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)

	f := &fixture{
		store:  s,
		clock:  newTestClock(),
		outbox: &outbox{},
		keys:   keys,
	}
	f.identities = &LocalIdentityProvider{
		Store:  s,
		Signer: keys.Signer,
		Issuer: testIssuer,
		Now:    f.clock.Now,
	}
	f.memberships = &MembershipService{Store: s, Now: f.clock.Now}
	f.invitations = &InvitationService{
		Store:       s,
		Memberships: f.memberships,
		Identities:  f.identities,
		Notifier:    f.outbox,
		BaseURL:     "https://app.roster.test/",
		Policy:      InvitePolicyAdmins,
		Now:         f.clock.Now,
	}

	f.admin = f.identity(t, "admin@example.com", "Ada Admin")
	f.org, _, err = f.memberships.CreateOrganization(context.Background(), "Acme", f.admin)
	require.NoError(t, err)

	return f
}

// identity registers a local identity with a fixed password.
func (f *fixture) identity(t *testing.T, email, name string) domain.Identity {
	t.Helper()
	id, err := f.identities.CreateIdentity(context.Background(), NewIdentity{
		Email:    email,
		Password: "correct horse battery",
		Name:     name,
	})
	require.NoError(t, err)
	return id
}

// invite creates an invitation as the fixture admin and returns the result
// and the raw acceptance token.
func (f *fixture) invite(t *testing.T, email, role string) (InvitationResult, string) {
	t.Helper()
	res, err := f.invitations.Create(context.Background(), CreateInvitationInput{
		OrganizationID: f.org.ID,
		Email:          email,
		Name:           "Invitee",
		Role:           role,
	}, f.admin)
	require.NoError(t, err)
	return res, acceptToken(res.Invitation.ID)
}

// member adds identity to the fixture org with role through an accepted
// invitation.
func (f *fixture) member(t *testing.T, identity domain.Identity, role string) domain.Membership {
	t.Helper()
	_, token := f.invite(t, identity.Email, role)
	res, err := f.invitations.Accept(context.Background(), token, identity)
	require.NoError(t, err)
	return res.Membership
}

func (f *fixture) countMemberships(t *testing.T) int {
	t.Helper()
	all, err := f.store.Memberships().ListMemberships(context.Background(), f.org.ID)
	require.NoError(t, err)
	return len(all)
}

func (f *fixture) pendingFor(t *testing.T, email string) int {
	t.Helper()
	all, err := f.store.Invitations().ListPendingInvitations(context.Background(), f.org.ID)
	require.NoError(t, err)
	n := 0
	for _, inv := range all {
		if inv.Email == email {
			n++
		}
	}
	return n
}
