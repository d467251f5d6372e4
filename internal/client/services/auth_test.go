package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/restate/internal/client/appwrite"
	"github.com/dmitrijs2005/restate/internal/client/browser"
	"github.com/dmitrijs2005/restate/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeAccount implements AccountClient for AuthService unit tests.
type fakeAccount struct {
	AuthURL    string
	AuthURLErr error

	SessionRet *appwrite.Session
	SessionErr error

	DeleteErr error

	SessionsRet *appwrite.SessionList
	SessionsErr error

	AccountRet *appwrite.Account
	AccountErr error

	JWTRet string
	JWTErr error

	// recorded arguments
	LastProvider appwrite.OAuthProvider
	LastSuccess  string
	LastFailure  string
	LastUserID   string
	LastSecret   string
	LastDeleted  string

	CreateSessionCalls int
	GetAccountCalls    int
}

func (f *fakeAccount) CreateOAuth2Token(ctx context.Context, provider appwrite.OAuthProvider, success, failure string) (string, error) {
	f.LastProvider, f.LastSuccess, f.LastFailure = provider, success, failure
	return f.AuthURL, f.AuthURLErr
}

func (f *fakeAccount) CreateSession(ctx context.Context, userID, secret string) (*appwrite.Session, error) {
	f.CreateSessionCalls++
	f.LastUserID, f.LastSecret = userID, secret
	return f.SessionRet, f.SessionErr
}

func (f *fakeAccount) DeleteSession(ctx context.Context, sessionID string) error {
	f.LastDeleted = sessionID
	return f.DeleteErr
}

func (f *fakeAccount) ListSessions(ctx context.Context) (*appwrite.SessionList, error) {
	return f.SessionsRet, f.SessionsErr
}

func (f *fakeAccount) GetAccount(ctx context.Context) (*appwrite.Account, error) {
	f.GetAccountCalls++
	return f.AccountRet, f.AccountErr
}

func (f *fakeAccount) CreateJWT(ctx context.Context) (string, error) {
	return f.JWTRet, f.JWTErr
}

func (f *fakeAccount) InitialsURL(name string) string {
	return "https://cloud.example/v1/avatars/initials?name=" + name
}

// fakeBrowser implements browser.AuthSession.
type fakeBrowser struct {
	Ret browser.Result
	Err error

	LastAuthURL  string
	LastRedirect string
	Calls        int
}

func (f *fakeBrowser) Open(ctx context.Context, authURL, redirectURL string) (browser.Result, error) {
	f.Calls++
	f.LastAuthURL, f.LastRedirect = authURL, redirectURL
	return f.Ret, f.Err
}

// ---- helpers ----

func newAuth(fc *fakeAccount, fb *fakeBrowser) AuthService {
	return NewAuthService(fc, fb, AuthConfig{Platform: "com.mrf.restate", CallbackAddr: "127.0.0.1:8765"}, logging.Nop())
}

const redirect = "http://127.0.0.1:8765/com.mrf.restate/"

// ---- Login ----

func TestLogin_Success(t *testing.T) {
	fc := &fakeAccount{AuthURL: "https://cloud.example/v1/account/tokens/oauth2/google", SessionRet: &appwrite.Session{ID: "s1"}}
	fb := &fakeBrowser{Ret: browser.Result{Type: browser.ResultSuccess, URL: redirect + "?userId=u1&secret=s3cr3t"}}

	ok := newAuth(fc, fb).Login(context.Background())

	require.True(t, ok)
	assert.Equal(t, appwrite.OAuthGoogle, fc.LastProvider)
	assert.Equal(t, redirect, fc.LastSuccess)
	assert.Equal(t, redirect, fc.LastFailure)
	assert.Equal(t, fc.AuthURL, fb.LastAuthURL)
	assert.Equal(t, redirect, fb.LastRedirect)
	assert.Equal(t, "u1", fc.LastUserID)
	assert.Equal(t, "s3cr3t", fc.LastSecret)
}

func TestLogin_MissingCallbackParams(t *testing.T) {
	for _, cb := range []string{
		redirect + "?userId=u1",
		redirect + "?secret=x",
		redirect,
	} {
		t.Run(cb, func(t *testing.T) {
			fc := &fakeAccount{AuthURL: "https://auth", SessionRet: &appwrite.Session{ID: "s1"}}
			fb := &fakeBrowser{Ret: browser.Result{Type: browser.ResultSuccess, URL: cb}}

			require.False(t, newAuth(fc, fb).Login(context.Background()))
			assert.Zero(t, fc.CreateSessionCalls)
		})
	}
}

func TestLogin_SessionNotCompleted(t *testing.T) {
	for _, rt := range []browser.ResultType{browser.ResultCancel, browser.ResultDismiss} {
		t.Run(string(rt), func(t *testing.T) {
			fc := &fakeAccount{AuthURL: "https://auth"}
			fb := &fakeBrowser{Ret: browser.Result{Type: rt}}

			require.False(t, newAuth(fc, fb).Login(context.Background()))
			assert.Zero(t, fc.CreateSessionCalls)
		})
	}
}

func TestLogin_BrowserError(t *testing.T) {
	fc := &fakeAccount{AuthURL: "https://auth"}
	fb := &fakeBrowser{Err: errors.New("listen: address in use")}

	require.False(t, newAuth(fc, fb).Login(context.Background()))
	assert.Zero(t, fc.CreateSessionCalls)
}

func TestLogin_NoAuthURL(t *testing.T) {
	fc := &fakeAccount{}
	fb := &fakeBrowser{}

	require.False(t, newAuth(fc, fb).Login(context.Background()))
	assert.Zero(t, fb.Calls)
}

func TestLogin_TokenError(t *testing.T) {
	fc := &fakeAccount{AuthURLErr: &appwrite.Error{Kind: appwrite.KindNetwork, Message: "dial tcp"}}
	fb := &fakeBrowser{}

	require.False(t, newAuth(fc, fb).Login(context.Background()))
	assert.Zero(t, fb.Calls)
}

func TestLogin_SessionError(t *testing.T) {
	fc := &fakeAccount{AuthURL: "https://auth", SessionErr: appwrite.ErrUnauthorized}
	fb := &fakeBrowser{Ret: browser.Result{Type: browser.ResultSuccess, URL: redirect + "?userId=u&secret=s"}}

	require.False(t, newAuth(fc, fb).Login(context.Background()))
	assert.Equal(t, 1, fc.CreateSessionCalls)
}

func TestLogin_NilSession(t *testing.T) {
	fc := &fakeAccount{AuthURL: "https://auth"}
	fb := &fakeBrowser{Ret: browser.Result{Type: browser.ResultSuccess, URL: redirect + "?userId=u&secret=s"}}

	require.False(t, newAuth(fc, fb).Login(context.Background()))
}

func TestLogin_EmptySessionBodyFromServer(t *testing.T) {
	for _, body := range []string{"", "{}"} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/account/sessions/token", r.URL.Path)
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := appwrite.New(appwrite.Options{Endpoint: srv.URL + "/v1", Project: "proj"})
			fb := &fakeBrowser{Ret: browser.Result{Type: browser.ResultSuccess, URL: redirect + "?userId=u&secret=s"}}
			auth := NewAuthService(client, fb, AuthConfig{Platform: "com.mrf.restate", CallbackAddr: "127.0.0.1:8765"}, logging.Nop())

			assert.False(t, auth.Login(context.Background()))
			assert.Equal(t, 1, fb.Calls)
		})
	}
}

func TestParseCallback(t *testing.T) {
	uid, secret, err := parseCallback("restate://?secret=abc&userId=42")
	require.NoError(t, err)
	assert.Equal(t, "42", uid)
	assert.Equal(t, "abc", secret)

	_, _, err = parseCallback("::not a url")
	require.Error(t, err)

	_, _, err = parseCallback("http://x/?userId=1")
	require.ErrorIs(t, err, ErrMissingCallbackParams)
}

// ---- Logout ----

func TestLogout(t *testing.T) {
	fc := &fakeAccount{}
	require.True(t, newAuth(fc, &fakeBrowser{}).Logout(context.Background()))
	assert.Equal(t, "current", fc.LastDeleted)

	fc = &fakeAccount{DeleteErr: appwrite.ErrUnauthorized}
	require.False(t, newAuth(fc, &fakeBrowser{}).Logout(context.Background()))
}

// ---- CurrentUser ----

func TestCurrentUser_NoSessions(t *testing.T) {
	for name, list := range map[string]*appwrite.SessionList{
		"nil":   nil,
		"empty": {Total: 0},
	} {
		t.Run(name, func(t *testing.T) {
			fc := &fakeAccount{SessionsRet: list, AccountRet: &appwrite.Account{ID: "u1"}}

			assert.Nil(t, newAuth(fc, &fakeBrowser{}).CurrentUser(context.Background()))
			assert.Zero(t, fc.GetAccountCalls)
		})
	}
}

func TestCurrentUser_ListError(t *testing.T) {
	fc := &fakeAccount{SessionsErr: &appwrite.Error{Kind: appwrite.KindUnauthorized, Code: 401}}

	assert.Nil(t, newAuth(fc, &fakeBrowser{}).CurrentUser(context.Background()))
	assert.Zero(t, fc.GetAccountCalls)
}

func TestCurrentUser_AccountError(t *testing.T) {
	fc := &fakeAccount{
		SessionsRet: &appwrite.SessionList{Total: 1, Sessions: []*appwrite.Session{{ID: "s1"}}},
		AccountErr:  &appwrite.Error{Kind: appwrite.KindNetwork, Message: "timeout"},
	}

	assert.Nil(t, newAuth(fc, &fakeBrowser{}).CurrentUser(context.Background()))
}

func TestCurrentUser_EmptyAccount(t *testing.T) {
	fc := &fakeAccount{
		SessionsRet: &appwrite.SessionList{Total: 1, Sessions: []*appwrite.Session{{ID: "s1"}}},
		AccountRet:  &appwrite.Account{},
	}

	assert.Nil(t, newAuth(fc, &fakeBrowser{}).CurrentUser(context.Background()))
}

func TestCurrentUser_Success(t *testing.T) {
	fc := &fakeAccount{
		SessionsRet: &appwrite.SessionList{Total: 1, Sessions: []*appwrite.Session{{ID: "s1", Current: true}}},
		AccountRet:  &appwrite.Account{ID: "u1", Name: "Jane", Email: "jane@example.com"},
	}

	u := newAuth(fc, &fakeBrowser{}).CurrentUser(context.Background())

	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "https://cloud.example/v1/avatars/initials?name=Jane", u.Avatar)
}

// ---- IssueJWT ----

func TestIssueJWT(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	fc := &fakeAccount{JWTRet: tok}
	got, expires, ok := newAuth(fc, &fakeBrowser{}).IssueJWT(context.Background())

	require.True(t, ok)
	assert.Equal(t, tok, got)
	assert.True(t, exp.Equal(expires), "expires %v, want %v", expires, exp)
}

func TestIssueJWT_Errors(t *testing.T) {
	fc := &fakeAccount{JWTErr: appwrite.ErrUnauthorized}
	_, _, ok := newAuth(fc, &fakeBrowser{}).IssueJWT(context.Background())
	assert.False(t, ok)

	fc = &fakeAccount{JWTRet: "not-a-jwt"}
	_, _, ok = newAuth(fc, &fakeBrowser{}).IssueJWT(context.Background())
	assert.False(t, ok)
}
