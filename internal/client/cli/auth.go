package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/restate/internal/client/authctx"
)

var (
	ErrLoginInProgress = errors.New("login already in progress")
	ErrAlreadyLoggedIn = errors.New("already logged in")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrLoginFailed     = errors.New("login failed")
	ErrLogoutFailed    = errors.New("logout failed")
	ErrJWTFailed       = errors.New("could not create jwt")
)

// Login runs the browser flow and refreshes the signed-in state. A second
// login while one is running is rejected.
func (a *App) Login(ctx context.Context) error {
	if !a.loggingIn.CompareAndSwap(false, true) {
		return ErrLoginInProgress
	}
	defer a.loggingIn.Store(false)

	p := authctx.FromContext(ctx)
	if p.State().IsLogged {
		return ErrAlreadyLoggedIn
	}

	fmt.Fprintln(a.out, "Complete the sign-in in your browser...")
	if !a.authService.Login(ctx) {
		return ErrLoginFailed
	}

	p.Refetch(ctx, nil)
	if u := p.State().User; u != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	}
	return nil
}

// Logout ends the current session and refreshes the signed-in state.
func (a *App) Logout(ctx context.Context) error {
	p := authctx.FromContext(ctx)
	if !p.State().IsLogged {
		return ErrNotLoggedIn
	}
	if !a.authService.Logout(ctx) {
		return ErrLogoutFailed
	}

	p.Refetch(ctx, nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := authctx.FromContext(ctx).State().User
	if u == nil {
		return ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s>\nid:     %s\navatar: %s\n", u.Name, u.Email, u.ID, u.Avatar)
	return nil
}

// JWT prints a short-lived account JWT for the current session.
func (a *App) JWT(ctx context.Context) error {
	if !authctx.FromContext(ctx).State().IsLogged {
		return ErrNotLoggedIn
	}
	token, expires, ok := a.authService.IssueJWT(ctx)
	if !ok {
		return ErrJWTFailed
	}
	fmt.Fprintln(a.out, token)
	if !expires.IsZero() {
		fmt.Fprintf(a.out, "expires: %s\n", expires.Local().Format(time.RFC3339))
	}
	return nil
}
