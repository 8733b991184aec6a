package ui_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"luxe_haven/internal/adapters/ui"
)

func TestToasts_BoundedAndDrain(t *testing.T) {
	ts := ui.NewToasts(zerolog.Nop(), 2)
	ts.Success("one")
	ts.Error("two")
	ts.Success("three")

	got := ts.Drain()
	if len(got) != 2 || got[0].Message != "two" || got[1].Message != "three" {
		t.Fatalf("unexpected feed: %+v", got)
	}
	if got[0].Level != ui.LevelError {
		t.Fatalf("level: %s", got[0].Level)
	}
	if len(ts.Drain()) != 0 {
		t.Fatalf("feed should be empty after drain")
	}
}

func TestRouter_NavigateAndBack(t *testing.T) {
	r := ui.NewRouter(zerolog.Nop(), "")
	r.Navigate("/rooms")
	r.Navigate("/rooms") // no-op
	r.Navigate("/login")
	if r.Current() != "/login" {
		t.Fatalf("current: %s", r.Current())
	}
	if r.Back() != "/rooms" || r.Back() != "/" || r.Back() != "/" {
		t.Fatalf("unexpected history")
	}
}

func TestRouter_HistoryIsBounded(t *testing.T) {
	r := ui.NewRouter(zerolog.Nop(), "/")
	for i := 0; i < ui.MaxHistory*3; i++ {
		r.Navigate(fmt.Sprintf("/rooms/%d", i))
	}
	last := ui.MaxHistory*3 - 1
	for i := 1; i <= ui.MaxHistory; i++ {
		if got, want := r.Back(), fmt.Sprintf("/rooms/%d", last-i); got != want {
			t.Fatalf("back %d: got %s want %s", i, got, want)
		}
	}
	// the stack is empty now: the oldest routes were dropped
	want := fmt.Sprintf("/rooms/%d", last-ui.MaxHistory)
	if got := r.Back(); got != want {
		t.Fatalf("past the bound: got %s want %s", got, want)
	}
}
