package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"luxe_haven/internal/adapters/observability"
	"luxe_haven/internal/domain"
)

// KeyBookingData holds the staged self-service selection.
const KeyBookingData = "bookingData"

type SelfStep int

const (
	StepReserve SelfStep = iota + 1
	StepSelectDate
	StepConfirm
)

var stepLabels = [...]string{"", "Reserve Room", "Select Date", "Confirm"}

func (s SelfStep) Label() string {
	if s < StepReserve || s > StepConfirm {
		return ""
	}
	return stepLabels[s]
}

// ProgressItem is one dot of the progress indicator.
type ProgressItem struct {
	Step   SelfStep `json:"step"`
	Label  string   `json:"label"`
	Done   bool     `json:"done"`
	Active bool     `json:"active"`
}

func Progress(current SelfStep) []ProgressItem {
	out := make([]ProgressItem, 0, 3)
	for s := StepReserve; s <= StepConfirm; s++ {
		out = append(out, ProgressItem{Step: s, Label: s.Label(), Done: s < current, Active: s == current})
	}
	return out
}

// SelfService is the guest-facing reserve → dates → confirm flow. The
// selection lives in the transient store until the guest confirms.
type SelfService struct {
	bookings domain.BookingAPI
	kv       domain.KV
	ttl      time.Duration
	notify   domain.Notifier
	log      zerolog.Logger
}

func NewSelfService(b domain.BookingAPI, transient domain.KV, ttl time.Duration, n domain.Notifier, l zerolog.Logger) *SelfService {
	return &SelfService{bookings: b, kv: transient, ttl: ttl, notify: n, log: l.With().Str("flow", "self_service").Logger()}
}

// SelectDates validates the date step for room and stages the result.
func (s *SelfService) SelectDates(ctx context.Context, room domain.Room, in, out domain.Date, guests int) (domain.StagedBooking, error) {
	var err error
	nights := domain.Nights(in, out)
	switch {
	case in.IsZero() || out.IsZero():
		err = domain.Invalid("dates", "Please select check-in and check-out dates")
	case nights <= 0:
		err = domain.Invalid("dates", "Check-out date must be after check-in date")
	case guests < 1:
		err = domain.Invalid("guests", "Please select at least 1 guest")
	case room.MaxGuest > 0 && guests > room.MaxGuest:
		err = domain.Invalid("guests", fmt.Sprintf("This room can only accommodate up to %d guests", room.MaxGuest))
	}
	if err != nil {
		s.notify.Error(domain.UserMessage(err, ""))
		return domain.StagedBooking{}, err
	}

	staged := domain.StagedBooking{
		RoomID:     room.ID,
		CheckIn:    in,
		CheckOut:   out,
		Guests:     guests,
		Nights:     nights,
		TotalPrice: room.Price * int64(nights),
		RoomPrice:  room.Price,
	}
	b, _ := json.Marshal(staged)
	if err := s.kv.Set(ctx, KeyBookingData, string(b), s.ttl); err != nil {
		s.log.Error().Err(err).Msg("stage booking")
		s.notify.Error("Could not save your selection. Please try again.")
		return domain.StagedBooking{}, err
	}
	observability.ObserveStore("booking_data", "set")
	return staged, nil
}

// Staged returns the selection carried to the confirm step, if any.
func (s *SelfService) Staged(ctx context.Context) (domain.StagedBooking, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyBookingData)
	if err != nil || !ok {
		return domain.StagedBooking{}, false, err
	}
	var sb domain.StagedBooking
	if err := json.Unmarshal([]byte(raw), &sb); err != nil {
		s.log.Warn().Err(err).Msg("dropping unreadable staged booking")
		_ = s.kv.Del(ctx, KeyBookingData)
		return domain.StagedBooking{}, false, nil
	}
	return sb, true, nil
}

func (s *SelfService) ClearStaged(ctx context.Context) error {
	return s.kv.Del(ctx, KeyBookingData)
}

// Checkout hands the staged selection to the booking endpoint. The API
// owns every rule beyond what the date step checked.
func (s *SelfService) Checkout(ctx context.Context, method domain.PaymentMethod) (domain.Booking, error) {
	sb, ok, err := s.Staged(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	if !ok {
		err := domain.Invalid("booking", "No booking selection found. Please select your dates again.")
		s.notify.Error(err.Message())
		return domain.Booking{}, err
	}
	b, err := s.bookings.CreateBooking(ctx, domain.CreateBookingInput{
		Room:          sb.RoomID,
		StartDate:     sb.CheckIn,
		EndDate:       sb.CheckOut,
		TotalPrice:    sb.TotalPrice,
		PaymentMethod: method,
	})
	if err != nil {
		if !domain.Announced(err) {
			s.notify.Error(domain.UserMessage(err, "Failed to create booking"))
		}
		return domain.Booking{}, err
	}
	if err := s.ClearStaged(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear staged booking")
	}
	s.notify.Success("Booking created successfully")
	return b, nil
}
