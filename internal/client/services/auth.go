// Package services contains application services for the ReState client.
// This file defines the authentication service: OAuth login through the
// system browser, logout, the current-user check and account JWTs.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/restate/internal/client/appwrite"
	"github.com/dmitrijs2005/restate/internal/client/browser"
	"github.com/dmitrijs2005/restate/internal/client/models"
	"github.com/dmitrijs2005/restate/internal/logging"
)

var (
	ErrNoAuthURL             = errors.New("backend returned no oauth url")
	ErrAuthSessionIncomplete = errors.New("auth session not completed")
	ErrMissingCallbackParams = errors.New("callback is missing secret or userId")
	ErrNoSession             = errors.New("backend returned no session")
)

// AccountClient is the part of the backend client the auth service needs.
// *appwrite.Client satisfies it.
type AccountClient interface {
	CreateOAuth2Token(ctx context.Context, provider appwrite.OAuthProvider, success, failure string) (string, error)
	CreateSession(ctx context.Context, userID, secret string) (*appwrite.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) (*appwrite.SessionList, error)
	GetAccount(ctx context.Context) (*appwrite.Account, error)
	CreateJWT(ctx context.Context) (string, error)
	InitialsURL(name string) string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: run the Google OAuth flow and exchange the callback for a session.
//   - Logout: delete the current session.
//   - CurrentUser: the signed-in user, or nil.
//   - IssueJWT: a short-lived JWT for the current session and its expiry.
//
// No method returns an error: failures are logged and reported as false or
// nil, so callers cannot tell "no user" from "lookup failed".
//
// Login is not reentrant. Callers must not start a second login while one
// is in flight.
type AuthService interface {
	Login(ctx context.Context) bool
	Logout(ctx context.Context) bool
	CurrentUser(ctx context.Context) *models.User
	IssueJWT(ctx context.Context) (token string, expires time.Time, ok bool)
}

// AuthConfig scopes the OAuth redirect target.
type AuthConfig struct {
	Platform     string // app/bundle id, e.g. com.mrf.restate
	CallbackAddr string // loopback host:port receiving the redirect
}

type authService struct {
	client  AccountClient
	browser browser.AuthSession
	cfg     AuthConfig
	logger  logging.Logger
}

func NewAuthService(client AccountClient, b browser.AuthSession, cfg AuthConfig, logger logging.Logger) AuthService {
	return &authService{client: client, browser: b, cfg: cfg, logger: logger}
}

// Login runs the OAuth flow end to end and reports whether a session was
// created. Each attempt is logged under its own login_id.
func (a *authService) Login(ctx context.Context) bool {
	log := a.logger.With("login_id", uuid.NewString())

	if err := a.login(ctx, log); err != nil {
		log.Error(ctx, "error during login", "error", err)
		return false
	}
	log.Info(ctx, "login successful")
	return true
}

func (a *authService) login(ctx context.Context, log logging.Logger) error {
	redirect := browser.CreateURL(a.cfg.CallbackAddr, a.cfg.Platform)
	log.Debug(ctx, "redirect target", "url", redirect)

	authURL, err := a.client.CreateOAuth2Token(ctx, appwrite.OAuthGoogle, redirect, redirect)
	if err != nil {
		return fmt.Errorf("create oauth2 token: %w", err)
	}
	if authURL == "" {
		return ErrNoAuthURL
	}

	res, err := a.browser.Open(ctx, authURL, redirect)
	if err != nil {
		return fmt.Errorf("auth session: %w", err)
	}
	if res.Type != browser.ResultSuccess {
		return fmt.Errorf("%w: %s", ErrAuthSessionIncomplete, res.Type)
	}

	userID, secret, err := parseCallback(res.URL)
	if err != nil {
		return err
	}

	session, err := a.client.CreateSession(ctx, userID, secret)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if session == nil {
		return ErrNoSession
	}
	return nil
}

// parseCallback extracts the mandatory userId and secret parameters.
func parseCallback(raw string) (userID, secret string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse callback url: %w", err)
	}
	q := u.Query()
	userID, secret = q.Get("userId"), q.Get("secret")
	if userID == "" || secret == "" {
		return "", "", ErrMissingCallbackParams
	}
	return userID, secret, nil
}

func (a *authService) Logout(ctx context.Context) bool {
	if err := a.client.DeleteSession(ctx, "current"); err != nil {
		a.logger.Error(ctx, "error during logout", "error", err)
		return false
	}
	return true
}

// CurrentUser lists sessions before touching the account endpoint so that
// the common signed-out case never produces an authorization error.
func (a *authService) CurrentUser(ctx context.Context) *models.User {
	sessions, err := a.client.ListSessions(ctx)
	if err != nil {
		a.logUserLookupError(ctx, err)
		return nil
	}
	if sessions == nil || sessions.Total == 0 || len(sessions.Sessions) == 0 {
		return nil
	}

	acc, err := a.client.GetAccount(ctx)
	if err != nil {
		a.logUserLookupError(ctx, err)
		return nil
	}
	if acc == nil || acc.ID == "" {
		return nil
	}

	return &models.User{
		ID:     acc.ID,
		Name:   acc.Name,
		Email:  acc.Email,
		Avatar: a.client.InitialsURL(acc.Name),
	}
}

// logUserLookupError keeps expected "not signed in" outcomes out of the
// error log.
func (a *authService) logUserLookupError(ctx context.Context, err error) {
	if appwrite.KindOf(err) == appwrite.KindUnauthorized {
		a.logger.Debug(ctx, "no authenticated user", "error", err)
		return
	}
	a.logger.Error(ctx, "error fetching current user", "error", err)
}

// IssueJWT creates an account JWT and reads its expiry without verifying
// the signature; the backend is the only party that verifies it.
func (a *authService) IssueJWT(ctx context.Context) (string, time.Time, bool) {
	token, err := a.client.CreateJWT(ctx)
	if err != nil {
		a.logUserLookupError(ctx, err)
		return "", time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		a.logger.Error(ctx, "error parsing account jwt", "error", err)
		return "", time.Time{}, false
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return token, expires, true
}
