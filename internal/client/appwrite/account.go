package appwrite

import (
	"context"
	"net/url"
)

// OAuthProvider names an Appwrite OAuth2 provider.
type OAuthProvider string

const OAuthGoogle OAuthProvider = "google"

type Session struct {
	ID       string `json:"$id"`
	UserID   string `json:"userId"`
	Provider string `json:"provider"`
	Current  bool   `json:"current"`
	Expire   string `json:"expire"`
}

type SessionList struct {
	Total    int        `json:"total"`
	Sessions []*Session `json:"sessions"`
}

type Account struct {
	ID           string `json:"$id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Registration string `json:"registration"`
	Status       bool   `json:"status"`
}

// CreateOAuth2Token returns the URL that starts the provider's consent flow.
// Appwrite redirects to success with userId and secret query parameters once
// the user consents, or to failure otherwise. Nothing is sent to the server.
func (c *Client) CreateOAuth2Token(ctx context.Context, provider OAuthProvider, success, failure string) (string, error) {
	if provider == "" {
		return "", &Error{Kind: KindUnknown, Message: "oauth provider is required"}
	}
	q := url.Values{}
	q.Set("project", c.project)
	if success != "" {
		q.Set("success", success)
	}
	if failure != "" {
		q.Set("failure", failure)
	}
	return c.url("/account/tokens/oauth2/"+url.PathEscape(string(provider)), q)
}

// CreateSession exchanges a token (userId, secret) for a session. The session
// cookie lands in the client's jar and fallback cookies. A success response
// without a session id yields (nil, nil).
func (c *Client) CreateSession(ctx context.Context, userID, secret string) (*Session, error) {
	body := map[string]string{"userId": userID, "secret": secret}
	var s Session
	if err := c.do(ctx, "POST", "/account/sessions/token", nil, body, &s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, nil
	}
	return &s, nil
}

// DeleteSession removes a session; "current" deletes the one this client
// carries. Persisted fallback cookies are cleared on success.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := c.do(ctx, "DELETE", "/account/sessions/"+url.PathEscape(sessionID), nil, nil, nil); err != nil {
		return err
	}
	if sessionID == "current" {
		if err := c.setFallbackCookies(ctx, ""); err != nil {
			return &Error{Kind: KindUnknown, Message: "clear cookies: " + err.Error(), Err: err}
		}
	}
	return nil
}

func (c *Client) ListSessions(ctx context.Context) (*SessionList, error) {
	var l SessionList
	if err := c.do(ctx, "GET", "/account/sessions", nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var a Account
	if err := c.do(ctx, "GET", "/account", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateJWT issues a short-lived JWT for the current session.
func (c *Client) CreateJWT(ctx context.Context) (string, error) {
	var out struct {
		JWT string `json:"jwt"`
	}
	if err := c.do(ctx, "POST", "/account/jwts", nil, struct{}{}, &out); err != nil {
		return "", err
	}
	return out.JWT, nil
}
