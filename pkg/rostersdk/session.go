package rostersdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session performs authenticated requests with a session token. Tokens are
// not refreshed; sign in again once ExpiresAt has passed.
type Session struct {
	client      *Client
	accessToken string
	expiresAt   time.Time
	identity    IdentityInfo
}

func (s *Session) AccessToken() string    { return s.accessToken }
func (s *Session) ExpiresAt() time.Time   { return s.expiresAt }
func (s *Session) Identity() IdentityInfo { return s.identity }

func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	resp, err := s.client.doRequest(ctx, method, path, s.accessToken, body)
	if err != nil {
		return err
	}
	if target == nil {
		return checkStatusNoContent(resp)
	}
	return decodeJSON(resp, target, expectedStatus)
}

func orgPath(orgID string, rest string) string {
	return "/v1/organizations/" + url.PathEscape(orgID) + rest
}

// CreateOrganization creates an organization with the caller as admin.
func (s *Session) CreateOrganization(ctx context.Context, name string) (*CreateOrganizationResponse, error) {
	var out CreateOrganizationResponse
	if err := s.do(ctx, http.MethodPost, "/v1/organizations", CreateOrganizationRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrganizations lists the caller's memberships.
func (s *Session) ListOrganizations(ctx context.Context) (*ListOrganizationsResponse, error) {
	var out ListOrganizationsResponse
	if err := s.do(ctx, http.MethodGet, "/v1/organizations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListMembers(ctx context.Context, orgID string) (*ListMembersResponse, error) {
	var out ListMembersResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID, "/members"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateMemberRole(ctx context.Context, orgID, memberID, role string) (*MembershipInfo, error) {
	var out MembershipInfo
	path := orgPath(orgID, "/members/"+url.PathEscape(memberID))
	if err := s.do(ctx, http.MethodPatch, path, UpdateMemberRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RemoveMember(ctx context.Context, orgID, memberID string) error {
	return s.do(ctx, http.MethodDelete, orgPath(orgID, "/members/"+url.PathEscape(memberID)), nil, nil, http.StatusNoContent)
}

func (s *Session) CreateInvitation(ctx context.Context, orgID string, req CreateInvitationRequest) (*CreateInvitationResponse, error) {
	var out CreateInvitationResponse
	if err := s.do(ctx, http.MethodPost, orgPath(orgID, "/invitations"), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns pending, unexpired invitations, newest first.
func (s *Session) ListInvitations(ctx context.Context, orgID string) (*ListInvitationsResponse, error) {
	var out ListInvitationsResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID, "/invitations"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ResendInvitation(ctx context.Context, invitationID string) (*ResendInvitationResponse, error) {
	var out ResendInvitationResponse
	path := "/v1/invitations/" + url.PathEscape(invitationID) + "/resend"
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvitation removes a pending invitation. It returns ErrNotFound when
// the invitation is missing or already used.
func (s *Session) DeleteInvitation(ctx context.Context, invitationID string) error {
	return s.do(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(invitationID), nil, nil, http.StatusNoContent)
}

// AcceptInvitation joins the organization behind token as the caller.
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*AcceptInvitationResponse, error) {
	var out AcceptInvitationResponse
	if err := s.do(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{Token: token}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
