package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	fallbackCookiesHeader = "X-Fallback-Cookies"
	responseFormat        = "1.5.0"
	tracerName            = "github.com/dmitrijs2005/restate/internal/client/appwrite"
)

// CookieStore persists the fallback cookie value between runs.
type CookieStore interface {
	LoadCookies(ctx context.Context) (string, error)
	SaveCookies(ctx context.Context, value string) error
}

// Options configure a Client.
type Options struct {
	Endpoint string // e.g. https://cloud.appwrite.io/v1
	Project  string
	Timeout  time.Duration
	Cookies  CookieStore       // optional
	HTTP     *http.Client      // optional; Timeout is ignored when set
	Headers  map[string]string // extra headers sent on every request
}

type Client struct {
	endpoint  string
	project   string
	configErr error
	http      *http.Client
	headers   map[string]string
	store     CookieStore
	tracer    trace.Tracer

	mu       sync.Mutex
	fallback string
}

// New builds a Client. It never fails: a missing or malformed endpoint or
// project is reported by every call instead.
func New(opts Options) *Client {
	c := &Client{
		endpoint: strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/"),
		project:  strings.TrimSpace(opts.Project),
		headers:  opts.Headers,
		store:    opts.Cookies,
		tracer:   otel.Tracer(tracerName),
	}

	if c.endpoint == "" || c.project == "" {
		c.configErr = ErrNotConfigured
	} else if u, err := url.Parse(c.endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		c.configErr = fmt.Errorf("%w: bad endpoint %q", ErrNotConfigured, c.endpoint)
	}

	c.http = opts.HTTP
	if c.http == nil {
		jar, _ := cookiejar.New(nil)
		c.http = &http.Client{Jar: jar, Timeout: opts.Timeout}
	}
	return c
}

// Endpoint returns the configured API root without a trailing slash.
func (c *Client) Endpoint() string { return c.endpoint }

// Project returns the configured project id.
func (c *Client) Project() string { return c.project }

// Restore loads previously persisted fallback cookies. A missing store is
// not an error.
func (c *Client) Restore(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	v, err := c.store.LoadCookies(ctx)
	if err != nil {
		return fmt.Errorf("load cookies: %w", err)
	}
	c.mu.Lock()
	c.fallback = v
	c.mu.Unlock()
	return nil
}

func (c *Client) fallbackCookies() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallback
}

func (c *Client) setFallbackCookies(ctx context.Context, v string) error {
	c.mu.Lock()
	changed := c.fallback != v
	c.fallback = v
	c.mu.Unlock()

	if !changed || c.store == nil {
		return nil
	}
	return c.store.SaveCookies(ctx, v)
}

func (c *Client) url(path string, query url.Values) (string, error) {
	if c.configErr != nil {
		return "", &Error{Kind: KindUnknown, Message: c.configErr.Error(), Err: c.configErr}
	}
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// do sends one request. body (if not nil) is JSON-encoded; out (if not nil)
// receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "appwrite "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("appwrite.path", path),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	target, err := c.url(path, query)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: "encode request: " + err.Error(), Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
	}
	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Response-Format", responseFormat)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if fb := c.fallbackCookies(); fb != "" {
		req.Header.Set(fallbackCookiesHeader, fb)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if fb := resp.Header.Get(fallbackCookiesHeader); fb != "" {
		if err := c.setFallbackCookies(ctx, fb); err != nil {
			return &Error{Kind: KindUnknown, Message: "save cookies: " + err.Error(), Err: err}
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindUnknown, Code: resp.StatusCode, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}
