// Package authctx holds the process-wide signed-in state: the current user,
// whether it is still loading and a way to re-check it.
//
// A Provider is created once near the program root, loaded, and placed in a
// context.Context with WithProvider. Consumers call FromContext; doing so
// outside a provider is a programming error and panics.
package authctx

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/restate/internal/client/fetch"
	"github.com/dmitrijs2005/restate/internal/client/models"
)

// State is what consumers read.
type State struct {
	IsLogged bool
	User     *models.User
	Loading  bool
}

// Provider wraps a fetch hook around the current-user lookup.
type Provider struct {
	hook *fetch.Hook[*models.User]
	once sync.Once
}

// NewProvider builds a provider around currentUser, which returns nil when
// nobody is signed in. The lookup does not run until Load.
func NewProvider(currentUser func(ctx context.Context) *models.User) *Provider {
	fn := func(ctx context.Context, _ fetch.Params) (*models.User, error) {
		return currentUser(ctx), nil
	}
	return &Provider{hook: fetch.New(fn)}
}

// Load runs the initial lookup once. Later calls are no-ops; use Refetch to
// re-check.
func (p *Provider) Load(ctx context.Context) {
	p.once.Do(func() { p.hook.Run(ctx) })
}

// Refetch re-runs the lookup, typically after login or logout. A nil params
// map is treated as empty.
func (p *Provider) Refetch(ctx context.Context, params fetch.Params) {
	if params == nil {
		params = fetch.Params{}
	}
	p.hook.Refetch(ctx, params)
}

func (p *Provider) State() State {
	st := p.hook.State()
	return State{
		IsLogged: st.Data != nil,
		User:     st.Data,
		Loading:  st.Loading,
	}
}

type ctxKey struct{}

// WithProvider returns a copy of ctx carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the provider stored in ctx. It panics when there is
// none.
func FromContext(ctx context.Context) *Provider {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	if !ok || p == nil {
		panic("authctx: FromContext called outside of a provider")
	}
	return p
}
