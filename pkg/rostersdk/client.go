package rostersdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the roster service. It provides the public
// endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a roster client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login signs in with email and password and returns a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp SessionResponse
	if err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{Email: email, Password: password}, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(resp), nil
}

// Signup creates a local identity. It does not sign in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*IdentityInfo, error) {
	var resp IdentityInfo
	if err := c.postJSON(ctx, "/v1/auth/signup", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NewSession wraps an issued session token.
func (c *Client) NewSession(resp SessionResponse) *Session {
	return &Session{
		client:      c,
		accessToken: resp.AccessToken,
		expiresAt:   resp.ExpiresAt,
		identity:    resp.Identity,
	}
}
