package booking

import (
	"context"
	"strings"
	"sync"

	"luxe_haven/internal/domain"
)

// RoomPicker lists the rooms free for a date range and hands one back.
// Availability is the server's call; the picker only narrows the list.
type RoomPicker struct {
	api    domain.RoomAPI
	notify domain.Notifier

	mu       sync.RWMutex
	open     bool
	loading  bool
	checkIn  domain.Date
	checkOut domain.Date
	rooms    []domain.Room
	category string
	query    string
	err      string
}

func NewRoomPicker(api domain.RoomAPI, n domain.Notifier) *RoomPicker {
	return &RoomPicker{api: api, notify: n}
}

// Open loads availability for [in, out). Both dates are required.
func (p *RoomPicker) Open(ctx context.Context, in, out domain.Date) error {
	if in.IsZero() || out.IsZero() {
		err := domain.Invalid("dates", "Please select check-in and check-out dates first")
		p.notify.Error(err.Message())
		return err
	}
	p.mu.Lock()
	p.open, p.loading, p.err = true, true, ""
	p.checkIn, p.checkOut = in, out
	p.category, p.query = "all", ""
	p.rooms = nil
	p.mu.Unlock()

	rooms, err := p.api.AvailableRooms(ctx, in, out)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if !p.open || !p.checkIn.Equal(in.Time) || !p.checkOut.Equal(out.Time) {
		// closed or reopened for other dates meanwhile
		return nil
	}
	if err != nil {
		p.err = domain.UserMessage(err, "Failed to fetch available rooms")
		if !domain.Announced(err) {
			p.notify.Error(p.err)
		}
		return err
	}
	p.rooms = rooms
	return nil
}

// Filter narrows by category ("all" or exact, any case) and free text.
func (p *RoomPicker) Filter(category, query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if strings.TrimSpace(category) == "" {
		category = "all"
	}
	p.category, p.query = category, query
}

func (p *RoomPicker) Visible() []domain.Room {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := []domain.Room{}
	for _, r := range p.rooms {
		if p.category != "all" && !strings.EqualFold(p.category, string(r.Category)) {
			continue
		}
		if !r.MatchesQuery(p.query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Select returns the room with id and closes the picker. in and out are the
// dates the caller is booking; availability was only checked for the range
// the picker was opened with, so any other range is refused.
func (p *RoomPicker) Select(id string, in, out domain.Date) (domain.Room, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return domain.Room{}, domain.Invalid("room", "Please open room selection first")
	}
	if !p.checkIn.Equal(in.Time) || !p.checkOut.Equal(out.Time) {
		p.open = false
		return domain.Room{}, domain.Invalid("dates", "Dates changed, please choose the room again")
	}
	for _, r := range p.rooms {
		if r.ID == id {
			p.open = false
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

func (p *RoomPicker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

// PickerState is the picker as a screen sees it.
type PickerState struct {
	Open     bool          `json:"open"`
	Loading  bool          `json:"loading"`
	CheckIn  domain.Date   `json:"checkIn"`
	CheckOut domain.Date   `json:"checkOut"`
	Category string        `json:"category"`
	Query    string        `json:"query"`
	Rooms    []domain.Room `json:"rooms"`
	Error    string        `json:"error,omitempty"`
}

func (p *RoomPicker) State() PickerState {
	rooms := p.Visible()
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PickerState{
		Open: p.open, Loading: p.loading,
		CheckIn: p.checkIn, CheckOut: p.checkOut,
		Category: p.category, Query: p.query,
		Rooms: rooms, Error: p.err,
	}
}
