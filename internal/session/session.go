// Package session exposes typed accessors over the local store for the
// state the browser build scattered across localStorage reads: auth
// token, signed-in user, and theme. Centralizing the accessors keeps the
// keys in one place and makes 401 cleanup a single call.
package session

import (
	"encoding/json"
	"fmt"

	"libshelf/internal/store"
)

const (
	keyToken = "token"
	keyUser  = "user"
	keyTheme = "theme"
)

// User is the signed-in identity echoed by the login endpoint.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Session reads and writes the persisted client session.
type Session struct {
	store *store.LocalStore
}

// New wraps the local store.
func New(s *store.LocalStore) *Session {
	return &Session{store: s}
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	token, _, err := s.store.Get(keyToken)
	if err != nil {
		return ""
	}
	return token
}

// SetToken persists the bearer token.
func (s *Session) SetToken(token string) error {
	return s.store.Set(keyToken, token)
}

// User returns the signed-in user, or nil when signed out.
func (s *Session) User() *User {
	raw, ok, err := s.store.Get(keyUser)
	if err != nil || !ok {
		return nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// SetUser persists the signed-in user.
func (s *Session) SetUser(u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.store.Set(keyUser, string(data))
}

// Theme returns the stored theme, defaulting to dark.
func (s *Session) Theme() string {
	theme, ok, err := s.store.Get(keyTheme)
	if err != nil || !ok {
		return "dark"
	}
	return theme
}

// SetTheme persists the theme preference.
func (s *Session) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.store.Set(keyTheme, theme)
}

// Clear drops token and user, e.g. after a 401 or an explicit logout.
// Theme and bookmarks survive sign-out.
func (s *Session) Clear() error {
	if err := s.store.Delete(keyToken); err != nil {
		return err
	}
	return s.store.Delete(keyUser)
}
