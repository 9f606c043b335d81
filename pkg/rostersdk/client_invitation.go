package rostersdk

import (
	"context"
	"net/http"
	"net/url"
)

// LookupInvitation previews the invitation behind token. This is a public
// endpoint; expired invitations are returned with Expired set.
func (c *Client) LookupInvitation(ctx context.Context, token string) (*InvitationLookupResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invitations/lookup?token="+url.QueryEscape(token), "", nil)
	if err != nil {
		return nil, err
	}

	var out InvitationLookupResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterAndAccept creates an account from an invitation and joins the
// organization. When the account was created but the invitation could not
// be accepted the returned error matches ErrRegisteredNotAccepted and its
// Identity is set; sign in and call Session.AcceptInvitation to retry.
func (c *Client) RegisterAndAccept(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/v1/invitations/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
