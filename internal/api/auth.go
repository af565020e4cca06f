package api

import (
	"context"
	"fmt"
	"net/http"

	"libshelf/internal/session"
)

// LoginResult carries the token and user echoed by the auth endpoint.
type LoginResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// Login authenticates and returns the bearer token plus user profile.
// The caller persists both; the client itself holds no auth state.
func (c *Client) Login(ctx context.Context, email, password, role string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{email, password, role}

	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	return &out, nil
}
