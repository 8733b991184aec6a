package app

import (
	"fmt"
	"strconv"
	"strings"

	"luxe_haven/internal/domain"
)

// RoomFilter is the guest room browser's filter bar.
type RoomFilter struct {
	Search   string
	Category string // "" or "all" for any
	Price    string // "min-max" in minor units, max may be empty
	Guests   int
}

// ParsePriceRange reads "min-max". An empty or malformed max means no
// upper bound.
func ParsePriceRange(s string) (min, max int64, bounded bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return 0, 0, false
	}
	lo, hi, _ := strings.Cut(s, "-")
	min, _ = strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	if v, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64); err == nil {
		return min, v, true
	}
	return min, 0, false
}

// matchSearch is the browse page's search: room number, category, or the
// letter+number code. Display names are the room picker's concern.
func matchSearch(r domain.Room, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(fmt.Sprint(r.Number), q) ||
		strings.Contains(strings.ToLower(string(r.Category)), q) ||
		strings.Contains(strings.ToLower(r.Code()), q)
}

func (f RoomFilter) Match(r domain.Room) bool {
	if !matchSearch(r, f.Search) {
		return false
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") &&
		!strings.EqualFold(c, string(r.Category)) {
		return false
	}
	min, max, bounded := ParsePriceRange(f.Price)
	if r.Price < min || (bounded && r.Price > max) {
		return false
	}
	if f.Guests > 0 && r.MaxGuest < f.Guests {
		return false
	}
	return true
}

// Apply returns the rooms that pass the filter, in order.
func (f RoomFilter) Apply(rooms []domain.Room) []domain.Room {
	out := []domain.Room{}
	for _, r := range rooms {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Browse filters the loaded rooms.
func (s *RoomStore) Browse(f RoomFilter) []domain.Room { return f.Apply(s.Items()) }
