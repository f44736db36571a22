package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/me/evento/pkg/model"
)

// Auth endpoints.
const (
	pathToken    = "/auth/token"
	pathRegister = "/auth/register"
	pathProfile  = "/users/me"
)

// LoginToken exchanges credentials for a bearer token at the token
// endpoint. The backend's OAuth2 form uses "username" for the email.
func (c *Client) LoginToken(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.postForm(ctx, pathToken, form, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			// Surface the server's message verbatim; raw body when no
			// structured detail is present.
			return "", &CredentialsError{Detail: se.Message()}
		}
		return "", err
	}

	if resp.AccessToken == "" {
		return "", &ProtocolError{Op: "login", Message: "no access_token in response"}
	}
	return resp.AccessToken, nil
}

// RegisterRequest is the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string     `json:"email"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	FullName string     `json:"full_name,omitempty"`
	Role     model.Role `json:"role"`
}

// Register creates a new account. It does not authenticate the client.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Role == "" {
		req.Role = model.RoleVisitor
	}

	var u model.User
	if err := c.doJSON(ctx, "POST", pathRegister, &req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Profile fetches the authoritative current-user record. Fails with
// ErrNoToken when the token source yields no token; a 401 response is
// surfaced as a StatusError for the gateway to act on.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	if c.token() == "" {
		return nil, ErrNoToken
	}

	var u model.User
	if err := c.doJSON(ctx, "GET", pathProfile, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
