package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrSessionNotFound is returned by a SessionStore for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// Identity is what the console knows about the signed-in user.
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	Department    string `json:"department"`
}

// IsAdmin accepts "admin" and Spring-style "ROLE_ADMIN" in any case.
func (i Identity) IsAdmin() bool {
	return strings.EqualFold(i.RoleName(), "admin")
}

// RoleName strips a ROLE_ prefix: "ROLE_RECRUITER" -> "RECRUITER".
func (i Identity) RoleName() string {
	role := strings.TrimSpace(i.Role)
	if len(role) > 5 && strings.EqualFold(role[:5], "role_") {
		return role[5:]
	}
	return role
}

// Session holds the server-side half of a login.
type Session struct {
	ID           string    `json:"id"`
	Identity     Identity  `json:"identity"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenExpiry  time.Time `json:"token_expiry"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionStore interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// LoginStart is where the browser goes to authenticate.
type LoginStart struct {
	RedirectURL string
	State       string
}

// LoginResult is a completed login: a new session and its signed cookie.
type LoginResult struct {
	Session *Session
	Cookie  string
}

type AuthUsecase interface {
	BeginLogin(ctx context.Context) (*LoginStart, error)
	CompleteLogin(ctx context.Context, code, state, expectedState string) (*LoginResult, error)
	Authenticate(ctx context.Context, cookie string) (*Session, error)
	Logout(ctx context.Context, session *Session) error
}

// ProfileRepository reads the signed-in user from the resource server.
type ProfileRepository interface {
	CurrentUsername(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}
