package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/auth"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/resource"
	"recruitment-console/pkg/security"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	msgLoginFailed    = "Login failed, please try again"
	msgSessionExpired = "Session expired, please sign in again"
)

// IDTokenVerifier checks an OpenID Connect ID token. *auth.Provider satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, raw, audience string) (*auth.IDTokenClaims, error)
}

type authUsecase struct {
	oauth    *oauth2.Config
	verifier IDTokenVerifier
	profile  domain.ProfileRepository
	users    domain.UserRepository
	sessions domain.SessionStore
	signer   *auth.CookieSigner
	audit    *security.AuditLogger
	now      func() time.Time
}

// NewAuthUsecase wires the authorization-code login. verifier may be nil,
// in which case the identity always comes from the profile endpoint.
func NewAuthUsecase(
	oauthConfig *oauth2.Config,
	verifier IDTokenVerifier,
	profile domain.ProfileRepository,
	users domain.UserRepository,
	sessions domain.SessionStore,
	signer *auth.CookieSigner,
	audit *security.AuditLogger,
) domain.AuthUsecase {
	return &authUsecase{
		oauth:    oauthConfig,
		verifier: verifier,
		profile:  profile,
		users:    users,
		sessions: sessions,
		signer:   signer,
		audit:    audit,
		now:      time.Now,
	}
}

func (u *authUsecase) BeginLogin(ctx context.Context) (*domain.LoginStart, error) {
	state := uuid.NewString()
	return &domain.LoginStart{
		RedirectURL: u.oauth.AuthCodeURL(state),
		State:       state,
	}, nil
}

func (u *authUsecase) CompleteLogin(ctx context.Context, code, state, expectedState string) (*domain.LoginResult, error) {
	if state == "" || state != expectedState {
		u.audit.LogLoginFailed(ctx, "state_mismatch")
		return nil, apperror.Unauthorized(msgLoginFailed)
	}
	if code == "" {
		u.audit.LogLoginFailed(ctx, "missing_code")
		return nil, apperror.Unauthorized(msgLoginFailed)
	}

	token, err := u.oauth.Exchange(ctx, code)
	if err != nil {
		u.audit.LogLoginFailed(ctx, "token_exchange")
		return nil, apperror.New(http.StatusUnauthorized, msgLoginFailed, fmt.Errorf("exchange code: %w", err))
	}

	authCtx := resource.WithAccessToken(ctx, token.AccessToken)
	identity, err := u.resolveIdentity(authCtx, token)
	if err != nil {
		u.audit.LogLoginFailed(ctx, "identity")
		return nil, err
	}

	session := &domain.Session{
		ID:           uuid.NewString(),
		Identity:     identity,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		CreatedAt:    u.now(),
	}
	if err := u.sessions.Save(ctx, session, u.signer.TTL()); err != nil {
		return nil, apperror.Internal(fmt.Errorf("save session: %w", err))
	}

	cookie, err := u.signer.Sign(auth.IdentityClaims{
		Authenticated: identity.Authenticated,
		Username:      identity.Username,
		Role:          identity.Role,
		Department:    identity.Department,
		SessionID:     session.ID,
	})
	if err != nil {
		_ = u.sessions.Delete(ctx, session.ID)
		return nil, apperror.Internal(err)
	}

	u.audit.Log(ctx, security.AuditEvent{
		Event:   security.EventLoginSuccess,
		Actor:   identity.Username,
		Details: map[string]any{"role": identity.Role},
	})
	return &domain.LoginResult{Session: session, Cookie: cookie}, nil
}

// resolveIdentity prefers a verified ID token and falls back to the profile
// endpoint; role and department come from the user record when missing.
func (u *authUsecase) resolveIdentity(ctx context.Context, token *oauth2.Token) (domain.Identity, error) {
	var identity domain.Identity

	if raw, ok := token.Extra("id_token").(string); ok && raw != "" && u.verifier != nil {
		claims, err := u.verifier.VerifyIDToken(ctx, raw, u.oauth.ClientID)
		if err != nil {
			return identity, apperror.New(http.StatusUnauthorized, msgLoginFailed, err)
		}
		identity.Username = claims.PreferredUsername
		if identity.Username == "" {
			identity.Username = claims.Subject
		}
		identity.Role = claims.Role
		identity.Department = claims.Department
	}

	if identity.Username == "" {
		username, err := u.profile.CurrentUsername(ctx)
		if err != nil {
			return identity, err
		}
		identity.Username = username
	}
	if identity.Username == "" {
		return identity, apperror.Unauthorized(msgLoginFailed)
	}
	identity.Authenticated = true

	if identity.Role == "" || identity.Department == "" {
		user, err := u.users.GetByUsername(ctx, identity.Username)
		if err != nil {
			logger.Log.Warn("could not load user record at login", "username", identity.Username, "error", err)
			return identity, nil
		}
		if identity.Role == "" {
			identity.Role = user.Authority
		}
		if identity.Department == "" {
			identity.Department = user.Department
		}
	}
	return identity, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, cookie string) (*domain.Session, error) {
	claims, err := u.signer.Parse(cookie)
	if err != nil || !claims.Authenticated || claims.SessionID == "" {
		return nil, apperror.Unauthorized(msgSessionExpired)
	}

	session, err := u.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		u.audit.Log(ctx, security.AuditEvent{Event: security.EventSessionExpired, Actor: claims.Username})
		return nil, apperror.Unauthorized(msgSessionExpired)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load session: %w", err))
	}

	if !session.TokenExpiry.IsZero() && !u.now().Before(session.TokenExpiry) {
		if session.RefreshToken != "" {
			err := u.refresh(ctx, session)
			if err == nil {
				return session, nil
			}
			logger.Log.Info("access token refresh failed", "username", claims.Username, "error", err)
		}
		_ = u.sessions.Delete(ctx, session.ID)
		u.audit.Log(ctx, security.AuditEvent{Event: security.EventSessionExpired, Actor: claims.Username})
		return nil, apperror.Unauthorized(msgSessionExpired)
	}
	return session, nil
}

// refresh trades the refresh token for a new access token and stores it for
// the rest of the session lifetime.
func (u *authUsecase) refresh(ctx context.Context, session *domain.Session) error {
	remaining := u.signer.TTL() - u.now().Sub(session.CreatedAt)
	if remaining <= 0 {
		return errors.New("session lifetime exceeded")
	}
	token, err := u.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Expiry:       session.TokenExpiry,
	}).Token()
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	session.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		session.RefreshToken = token.RefreshToken
	}
	session.TokenExpiry = token.Expiry
	return u.sessions.Save(ctx, session, remaining)
}

// Logout ends the remote session on a best-effort basis and always drops the
// local one.
func (u *authUsecase) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	remoteCtx := resource.WithAccessToken(ctx, session.AccessToken)
	if err := u.profile.Logout(remoteCtx); err != nil {
		logger.Log.Warn("remote logout failed", "username", session.Identity.Username, "error", err)
	}
	if err := u.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	u.audit.Log(ctx, security.AuditEvent{Event: security.EventLogout, Actor: session.Identity.Username})
	return nil
}
