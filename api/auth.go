package api

import (
	"context"
	"net/http"

	"magnecruit-client/models"
)

// sessionResponse is the body of GET /api/auth/session.
type sessionResponse struct {
	IsLoggedIn bool         `json:"isLoggedIn"`
	User       *models.User `json:"user"`
}

// CheckSession asks the backend whether the stored session cookie is still
// valid. A nil user with a nil error means "not logged in", which is not a
// failure.
func (c *Client) CheckSession(ctx context.Context) (*models.User, error) {
	var resp sessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.IsLoggedIn || resp.User == nil {
		return nil, nil
	}
	return resp.User, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. The session cookie lands in
// the client's jar on success.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend to drop the session. Best-effort; callers clear
// local state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
