package rostersdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/invitations/lookup":
			ErrInvitationExpired.WriteError(w)
		case "/v1/invitations/register":
			e := *ErrRegisteredNotAccepted
			e.Identity = &IdentityInfo{ID: "id-1", Email: "new@example.com"}
			e.WriteError(w)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	_, err := c.LookupInvitation(ctx, "tok")
	require.ErrorIs(t, err, ErrInvitationExpired)

	_, err = c.RegisterAndAccept(ctx, RegisterRequest{Token: "tok", Password: "password123"})
	require.ErrorIs(t, err, ErrRegisteredNotAccepted)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusAccepted, apiErr.StatusCode)
	require.Equal(t, "id-1", apiErr.Identity.ID)

	_, err = c.GetLiveness(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestSessionSendsBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/organizations/org%2F1/members/m1", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	s := NewClient(srv.URL).NewSession(SessionResponse{AccessToken: "secret"})
	require.NoError(t, s.RemoveMember(context.Background(), "org/1", "m1"))
}

func TestDecodeSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AcceptInvitationRequest
		assert.NoError(t, httpx.DecodeJSON(w, r, &req))
		httpx.WriteJSON(w, http.StatusOK, AcceptInvitationResponse{
			Membership: MembershipInfo{ID: "m-" + req.Token, Role: "viewer"},
			Warnings:   []Warning{{Code: "email_mismatch"}},
		})
	}))
	t.Cleanup(srv.Close)

	s := NewClient(srv.URL).NewSession(SessionResponse{AccessToken: "secret"})
	out, err := s.AcceptInvitation(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "m-abc", out.Membership.ID)
	require.Len(t, out.Warnings, 1)
}
