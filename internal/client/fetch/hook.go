// Package fetch wraps an arbitrary async call and tracks its loading, data
// and error state for the UI layer.
//
// Calls are not coordinated: when two fetches overlap, whichever resolves
// last overwrites the state, even if it was started first. There is no
// cancellation of superseded calls.
package fetch

import (
	"context"
	"maps"
	"sync"
)

// Params are the named arguments passed to the wrapped function.
type Params map[string]any

// Func is the wrapped call.
type Func[T any] func(ctx context.Context, p Params) (T, error)

// State is a snapshot of a Hook. HasData distinguishes "never resolved"
// from a resolved zero value.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Error   string
}

type Option func(*options)

type options struct {
	params Params
	skip   bool
}

// WithParams sets the parameters of the initial fetch.
func WithParams(p Params) Option {
	return func(o *options) { o.params = maps.Clone(p) }
}

// WithSkip disables the initial fetch; the hook starts idle.
func WithSkip() Option {
	return func(o *options) { o.skip = true }
}

type Hook[T any] struct {
	fn   Func[T]
	skip bool

	mu     sync.Mutex
	params Params
	state  State[T]
}

func New[T any](fn Func[T], opts ...Option) *Hook[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.params == nil {
		o.params = Params{}
	}
	return &Hook[T]{
		fn:     fn,
		skip:   o.skip,
		params: o.params,
		state:  State[T]{Loading: !o.skip},
	}
}

// Run performs the initial fetch with the configured params. It does
// nothing when the hook was created with WithSkip.
func (h *Hook[T]) Run(ctx context.Context) {
	if h.skip {
		return
	}
	h.fetch(ctx, h.Params())
}

// Refetch merges newParams over the previous params and calls the wrapped
// function again. It returns once that call has resolved.
func (h *Hook[T]) Refetch(ctx context.Context, newParams Params) {
	h.mu.Lock()
	merged := maps.Clone(h.params)
	maps.Copy(merged, newParams)
	h.params = merged
	h.mu.Unlock()

	h.fetch(ctx, maps.Clone(merged))
}

func (h *Hook[T]) fetch(ctx context.Context, p Params) {
	h.mu.Lock()
	h.state.Loading = true
	h.state.Error = ""
	h.mu.Unlock()

	data, err := h.fn(ctx, p)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state.Error = err.Error()
	} else {
		h.state.Data = data
		h.state.HasData = true
		h.state.Error = ""
	}
	h.state.Loading = false
}

func (h *Hook[T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Params returns a copy of the params the next Refetch will merge into.
func (h *Hook[T]) Params() Params {
	h.mu.Lock()
	defer h.mu.Unlock()
	return maps.Clone(h.params)
}
