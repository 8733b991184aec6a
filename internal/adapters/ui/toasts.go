// Package ui holds the client-side presentation plumbing: the toast feed
// and the route the device is on.
package ui

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"luxe_haven/internal/adapters/observability"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Toasts is a bounded feed of notifications. Oldest entries drop first.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
	max   int
	log   zerolog.Logger
	now   func() time.Time
}

func NewToasts(l zerolog.Logger, max int) *Toasts {
	if max <= 0 {
		max = 50
	}
	return &Toasts{max: max, log: l, now: time.Now}
}

func (t *Toasts) Success(msg string) { t.push(LevelSuccess, msg) }
func (t *Toasts) Error(msg string)   { t.push(LevelError, msg) }

func (t *Toasts) push(level Level, msg string) {
	observability.ObserveNotification(string(level))
	ev := t.log.Info()
	if level == LevelError {
		ev = t.log.Warn()
	}
	ev.Str("level", string(level)).Msg(msg)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Level: level, Message: msg, At: t.now()})
	if over := len(t.items) - t.max; over > 0 {
		t.items = append([]Toast(nil), t.items[over:]...)
	}
}

// Drain returns pending toasts and empties the feed.
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.items
	t.items = nil
	return out
}

// Peek returns a copy without draining.
func (t *Toasts) Peek() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}
