// Package browser hands OAuth consent off to the system browser and waits
// for the provider to redirect back.
//
// The mobile app redirected to a deep link (com.mrf.restate://). A terminal
// client cannot own a URL scheme, so the redirect target is a loopback URL
// whose path is scoped to the platform id, served by a short-lived local
// HTTP listener (see Loopback).
package browser

import (
	"context"
	"net/url"
	"strings"
)

// ResultType classifies how an auth session ended.
type ResultType string

const (
	ResultSuccess ResultType = "success"
	ResultCancel  ResultType = "cancel"  // caller's context was cancelled
	ResultDismiss ResultType = "dismiss" // nobody came back before the timeout
)

// Result is the outcome of an auth session. URL is set only on success and
// holds the full callback URL, query included.
type Result struct {
	Type ResultType
	URL  string
}

// AuthSession opens authURL and blocks until the flow returns to
// redirectURL or gives up.
type AuthSession interface {
	Open(ctx context.Context, authURL, redirectURL string) (Result, error)
}

// CreateURL builds the redirect target for platform on the loopback address
// addr (host:port), e.g. http://127.0.0.1:53682/com.mrf.restate/.
func CreateURL(addr, platform string) string {
	u := url.URL{
		Scheme: "http",
		Host:   addr,
		Path:   "/" + strings.Trim(platform, "/") + "/",
	}
	return u.String()
}
