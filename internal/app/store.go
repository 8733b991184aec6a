// Package app holds the client-side stores behind each screen. A store owns
// one remote collection: it fetches it, applies mutations locally once the
// API accepts them, and tells the user how things went.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"luxe_haven/internal/adapters/observability"
	"luxe_haven/internal/domain"
)

// State is a point-in-time copy of a store.
type State[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type collection[T any] struct {
	name   string
	id     func(T) string
	notify domain.Notifier
	log    zerolog.Logger

	mu       sync.RWMutex
	items    []T
	loading  bool
	err      string
	detached bool
	gen      uint64 // bumped by Reset
}

func newCollection[T any](name string, id func(T) string, n domain.Notifier, l zerolog.Logger) *collection[T] {
	return &collection[T]{name: name, id: id, notify: n, log: l.With().Str("store", name).Logger(), items: []T{}}
}

func (c *collection[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State[T]{Items: append([]T{}, c.items...), Loading: c.loading, Error: c.err}
}

func (c *collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

// Find returns the item with id.
func (c *collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Detach stops the store from accepting results; calls still in flight
// complete against the API but leave the store untouched.
func (c *collection[T]) Detach() {
	c.mu.Lock()
	c.detached = true
	c.loading = false
	c.mu.Unlock()
}

// Reset empties the store for the next session. Unlike Detach the store
// keeps working; results of calls started before the reset are dropped.
func (c *collection[T]) Reset() {
	c.mu.Lock()
	c.items = []T{}
	c.err = ""
	c.loading = false
	c.gen++
	c.mu.Unlock()
	observability.ObserveStore(c.name, "reset")
}

// current reports whether results from generation gen may still be applied.
// The caller holds c.mu.
func (c *collection[T]) current(gen uint64) bool { return !c.detached && c.gen == gen }

func (c *collection[T]) Detached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detached
}

// fetch replaces the list with load's result. On failure the previous list
// stays and the error is recorded.
func (c *collection[T]) fetch(ctx context.Context, load func(context.Context) ([]T, error), fallback string) error {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return domain.ErrDetached
	}
	c.loading = true
	c.err = ""
	gen := c.gen
	c.mu.Unlock()

	items, err := load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		observability.ObserveStore(c.name, "discarded")
		return domain.ErrDetached
	}
	c.loading = false
	if err != nil {
		c.err = domain.UserMessage(err, fallback)
		c.log.Warn().Err(err).Msg("fetch failed")
		observability.ObserveStore(c.name, "fetch_error")
		c.fail(err, fallback)
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	observability.ObserveStore(c.name, "fetch")
	return nil
}

// fail reports err unless the user has already seen it.
func (c *collection[T]) fail(err error, fallback string) {
	if !domain.Announced(err) {
		c.notify.Error(domain.UserMessage(err, fallback))
	}
}

// mutation runs call and, on success, folds the result into the list with
// apply. The error is always handed back to the caller.
func mutation[T any](ctx context.Context, c *collection[T], call func(context.Context) (T, error), apply func([]T, T) []T, ok, fallback string) (T, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	v, err := call(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("mutation failed")
		observability.ObserveStore(c.name, "mutate_error")
		c.fail(err, fallback)
		var zero T
		return zero, err
	}
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		observability.ObserveStore(c.name, "discarded")
		return v, nil
	}
	c.items = apply(c.items, v)
	c.mu.Unlock()
	observability.ObserveStore(c.name, "mutate")
	if ok != "" {
		c.notify.Success(ok)
	}
	return v, nil
}

func (c *collection[T]) appendItem(items []T, v T) []T {
	return append(append([]T{}, items...), v)
}

func (c *collection[T]) replaceItem(items []T, v T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if c.id(it) == c.id(v) {
			out[i] = v
		} else {
			out[i] = it
		}
	}
	return out
}

func (c *collection[T]) removeID(items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if c.id(it) != id {
			out = append(out, it)
		}
	}
	return out
}
