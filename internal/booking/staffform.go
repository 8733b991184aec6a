// Package booking implements the front-desk and guest booking workflows:
// the two-step staff form, the room picker it opens, and the guest
// self-service date and confirmation steps.
package booking

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

var ErrSubmitting = errors.New("booking: submission in progress")

// Guest is the identity collected on the first step.
type Guest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	NIN       string `json:"nin"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
}

func (g Guest) validate() error {
	switch {
	case strings.TrimSpace(g.FirstName) == "" || strings.TrimSpace(g.LastName) == "":
		return domain.Invalid("name", "First name and last name are required")
	case strings.TrimSpace(g.NIN) == "":
		return domain.Invalid("nin", "NIN is required")
	case strings.TrimSpace(g.Phone) == "":
		return domain.Invalid("phone", "Phone number is required")
	}
	return nil
}

// Details is the stay collected on the second step.
type Details struct {
	Room          *domain.Room         `json:"room,omitempty"`
	CheckIn       domain.Date          `json:"checkIn"`
	CheckOut      domain.Date          `json:"checkOut"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	PaymentName   string               `json:"paymentName,omitempty"`
}

func (d Details) Nights() int { return domain.Nights(d.CheckIn, d.CheckOut) }

// Total is the room's nightly price times the nights, in minor units.
func (d Details) Total() int64 {
	if d.Room == nil {
		return 0
	}
	return d.Room.Price * int64(d.Nights())
}

// Step is one of GuestStep or BookingStep.
type Step interface {
	Name() string
	isStep()
}

type GuestStep struct {
	Guest Guest `json:"guest"`
}

type BookingStep struct {
	Guest   Guest   `json:"guest"`
	Details Details `json:"details"`
}

func (GuestStep) Name() string   { return "guest" }
func (BookingStep) Name() string { return "booking" }
func (GuestStep) isStep()        {}
func (BookingStep) isStep()      {}

// StaffForm drives the front-desk "new booking" dialog.
type StaffForm struct {
	api    domain.BookingAPI
	notify domain.Notifier
	log    zerolog.Logger

	// OnSuccess runs after a booking is confirmed and the form reset.
	OnSuccess func(domain.StaffBookingResult)

	mu         sync.Mutex
	step       Step
	submitting bool
}

func NewStaffForm(api domain.BookingAPI, n domain.Notifier, l zerolog.Logger) *StaffForm {
	return &StaffForm{api: api, notify: n, log: l.With().Str("flow", "staff_booking").Logger(), step: GuestStep{}}
}

func (f *StaffForm) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *StaffForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// SetGuest replaces the guest identity on either step.
func (f *StaffForm) SetGuest(g Guest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch s := f.step.(type) {
	case GuestStep:
		f.step = GuestStep{Guest: g}
	case BookingStep:
		f.step = BookingStep{Guest: g, Details: s.Details}
	}
}

// Continue moves from the guest step to the booking step when the guest
// identity is complete.
func (f *StaffForm) Continue() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.step.(GuestStep)
	if !ok {
		return nil
	}
	if err := s.Guest.validate(); err != nil {
		f.notify.Error(domain.UserMessage(err, ""))
		return err
	}
	f.step = BookingStep{Guest: s.Guest, Details: Details{PaymentMethod: domain.PayCash}}
	return nil
}

// Back returns to the guest step. Stay details are dropped.
func (f *StaffForm) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.step.(BookingStep); ok {
		f.step = GuestStep{Guest: s.Guest}
	}
}

// Update edits the stay details. It is a no-op outside the booking step.
func (f *StaffForm) Update(edit func(*Details)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.step.(BookingStep)
	if !ok {
		return false
	}
	d := s.Details
	edit(&d)
	f.step = BookingStep{Guest: s.Guest, Details: d}
	return true
}

// SetDates changes the stay. A chosen room is kept only while the dates
// stay the same, since availability was checked for the old range.
func (f *StaffForm) SetDates(in, out domain.Date) bool {
	return f.Update(func(d *Details) {
		if !d.CheckIn.Equal(in.Time) || !d.CheckOut.Equal(out.Time) {
			d.Room = nil
		}
		d.CheckIn, d.CheckOut = in, out
	})
}

func (f *StaffForm) SelectRoom(r domain.Room) bool {
	return f.Update(func(d *Details) { d.Room = &r })
}

func (f *StaffForm) SetPayment(m domain.PaymentMethod, name string) bool {
	return f.Update(func(d *Details) {
		d.PaymentMethod = m
		d.PaymentName = name
	})
}

// Payload builds the staff-booking request for a booking step, or a
// validation error naming the first problem.
func (s BookingStep) Payload() (domain.StaffBookingInput, error) {
	d := s.Details
	switch {
	case d.Room == nil || d.Room.ID == "":
		return domain.StaffBookingInput{}, domain.Invalid("room", "Please select a room")
	case d.CheckIn.IsZero() || d.CheckOut.IsZero():
		return domain.StaffBookingInput{}, domain.Invalid("dates", "Please select check-in and check-out dates")
	case d.Nights() < 1:
		return domain.StaffBookingInput{}, domain.Invalid("dates", "Check-out date must be after check-in date")
	}
	method := d.PaymentMethod
	if method == "" {
		method = domain.PayCash
	}
	if !method.Valid() {
		return domain.StaffBookingInput{}, domain.Invalid("paymentMethod", "Please select a payment method")
	}
	payer := strings.TrimSpace(d.PaymentName)
	if payer == "" {
		payer = s.Guest.FullName()
	}
	return domain.StaffBookingInput{
		FirstName:     strings.TrimSpace(s.Guest.FirstName),
		LastName:      strings.TrimSpace(s.Guest.LastName),
		NIN:           strings.TrimSpace(s.Guest.NIN),
		Phone:         strings.TrimSpace(s.Guest.Phone),
		Email:         strings.TrimSpace(s.Guest.Email),
		Address:       strings.TrimSpace(s.Guest.Address),
		Room:          d.Room.ID,
		StartDate:     d.CheckIn,
		EndDate:       d.CheckOut,
		TotalPrice:    d.Total(),
		PaymentMethod: method,
		PaymentName:   payer,
	}, nil
}

// Submit posts the booking once. On success the form resets and OnSuccess
// fires; on failure the state is left for correction.
func (f *StaffForm) Submit(ctx context.Context) (domain.StaffBookingResult, error) {
	f.mu.Lock()
	s, ok := f.step.(BookingStep)
	if !ok {
		f.mu.Unlock()
		err := domain.Invalid("step", "Please complete guest details first")
		f.notify.Error(err.Message())
		return domain.StaffBookingResult{}, err
	}
	if f.submitting {
		f.mu.Unlock()
		return domain.StaffBookingResult{}, ErrSubmitting
	}
	in, err := s.Payload()
	if err != nil {
		f.mu.Unlock()
		f.notify.Error(domain.UserMessage(err, ""))
		return domain.StaffBookingResult{}, err
	}
	f.submitting = true
	f.mu.Unlock()

	res, err := f.api.CreateStaffBooking(ctx, in)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		f.log.Warn().Err(err).Str("room", in.Room).Msg("staff booking failed")
		if !domain.Announced(err) {
			f.notify.Error(domain.UserMessage(err, "Failed to create booking"))
		}
		return domain.StaffBookingResult{}, err
	}
	f.step = GuestStep{}
	cb := f.OnSuccess
	f.mu.Unlock()

	f.log.Info().
		Str("room", in.Room).
		Str("confirmation", res.Booking.ConfirmationCode).
		Bool("new_guest", res.IsNewGuest).
		Msg("staff booking confirmed")
	if res.IsNewGuest {
		f.notify.Success("New guest account created and booking confirmed!")
	} else {
		f.notify.Success("Booking confirmed for existing guest!")
	}
	if cb != nil {
		cb(res)
	}
	return res, nil
}

// Reset discards everything and returns to the guest step.
func (f *StaffForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = GuestStep{}
	f.submitting = false
}

// RegisterGuest creates a guest account without a booking.
func (f *StaffForm) RegisterGuest(ctx context.Context, g Guest) (domain.User, error) {
	if err := g.validate(); err != nil {
		f.notify.Error(domain.UserMessage(err, ""))
		return domain.User{}, err
	}
	u, err := f.api.RegisterGuest(ctx, domain.GuestRegistration{
		FirstName: strings.TrimSpace(g.FirstName),
		LastName:  strings.TrimSpace(g.LastName),
		NIN:       strings.TrimSpace(g.NIN),
		Phone:     strings.TrimSpace(g.Phone),
		Email:     strings.TrimSpace(g.Email),
		Address:   strings.TrimSpace(g.Address),
	})
	if err != nil {
		if !domain.Announced(err) {
			f.notify.Error(domain.UserMessage(err, "Failed to register guest"))
		}
		return domain.User{}, err
	}
	f.notify.Success("Guest registered successfully")
	return u, nil
}
