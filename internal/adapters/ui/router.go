package ui

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// MaxHistory bounds the back stack; the oldest entries go first.
const MaxHistory = 50

// Router tracks the current route of the device.
type Router struct {
	mu      sync.Mutex
	current string
	history []string
	log     zerolog.Logger
}

func NewRouter(l zerolog.Logger, start string) *Router {
	if start == "" {
		start = "/"
	}
	return &Router{current: start, log: l}
}

func (r *Router) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if route == r.current {
		return
	}
	if len(r.history) >= MaxHistory {
		r.history = slices.Delete(r.history, 0, len(r.history)-MaxHistory+1)
	}
	r.history = append(r.history, r.current)
	r.current = route
	r.log.Debug().Str("route", route).Msg("navigate")
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Back returns to the previous route, if any.
func (r *Router) Back() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.history); n > 0 {
		r.current = r.history[n-1]
		r.history = r.history[:n-1]
	}
	return r.current
}
