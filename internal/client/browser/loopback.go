package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	pkgbrowser "github.com/pkg/browser"

	"github.com/dmitrijs2005/restate/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

const donePage = `<!doctype html>
<html><body style="font-family:sans-serif;text-align:center;margin-top:4em">
<h2>ReState</h2><p>You can close this window and return to the terminal.</p>
</body></html>`

// Loopback implements AuthSession with a local HTTP listener bound to the
// redirect URL's host.
type Loopback struct {
	Timeout time.Duration
	Out     io.Writer // the auth URL is always printed here for headless use

	openURL func(string) error
	logger  logging.Logger
}

func NewLoopback(timeout time.Duration, out io.Writer, logger logging.Logger) *Loopback {
	return &Loopback{Timeout: timeout, Out: out, openURL: pkgbrowser.OpenURL, logger: logger}
}

func (l *Loopback) Open(ctx context.Context, authURL, redirectURL string) (Result, error) {
	ru, err := url.Parse(redirectURL)
	if err != nil {
		return Result{}, fmt.Errorf("parse redirect url: %w", err)
	}
	path := ru.Path
	if path == "" {
		path = "/"
	}

	ln, err := net.Listen("tcp", ru.Host)
	if err != nil {
		return Result{}, fmt.Errorf("listen on %s: %w", ru.Host, err)
	}

	callbacks := make(chan string, 1)

	r := chi.NewRouter()
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		cb := *ru
		cb.RawQuery = req.URL.RawQuery
		select {
		case callbacks <- cb.String():
		default:
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, donePage)
	})

	srv := &http.Server{Handler: r, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Warn(ctx, "callback listener stopped", "error", err)
		}
	}()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if l.Out != nil {
		fmt.Fprintf(l.Out, "Continue signing in in your browser:\n  %s\n", authURL)
	}
	if err := l.openURL(authURL); err != nil {
		l.logger.Warn(ctx, "could not launch browser", "error", err)
	}

	var timeout <-chan time.Time
	if l.Timeout > 0 {
		t := time.NewTimer(l.Timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case cb := <-callbacks:
		return Result{Type: ResultSuccess, URL: cb}, nil
	case <-ctx.Done():
		return Result{Type: ResultCancel}, nil
	case <-timeout:
		return Result{Type: ResultDismiss}, nil
	}
}
