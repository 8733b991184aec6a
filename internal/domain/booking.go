package domain

import (
	"bytes"
	"encoding/json"
)

type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayTransfer PaymentMethod = "transfer"
	PayCard     PaymentMethod = "card"
	PayPOS      PaymentMethod = "POS"
	PayOnline   PaymentMethod = "online payment"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PayCash, PayTransfer, PayCard, PayPOS, PayOnline:
		return true
	}
	return false
}

// RoomRef is a booking's room: either a bare id or a populated summary.
type RoomRef struct {
	ID       string       `json:"_id"`
	Number   int          `json:"number,omitempty"`
	Alphabet string       `json:"alphabet,omitempty"`
	Category RoomCategory `json:"category,omitempty"`
}

func (r *RoomRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	type plain RoomRef
	return json.Unmarshal(b, (*plain)(r))
}

func (r RoomRef) DisplayName() string {
	if r.Number == 0 && r.Alphabet == "" {
		return "N/A"
	}
	return Room{Number: r.Number, Alphabet: r.Alphabet, Category: r.Category}.DisplayName()
}

// UserRef is a booking's guest: either a bare id or a populated summary.
type UserRef struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (u *UserRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &u.ID)
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	type plain UserRef
	return json.Unmarshal(b, (*plain)(u))
}

func (u UserRef) FullName() string { return joinName(u.FirstName, u.LastName) }

type Booking struct {
	ID               string        `json:"_id"`
	ConfirmationCode string        `json:"confirmationCode"`
	Room             RoomRef       `json:"room"`
	User             UserRef       `json:"user"`
	StartDate        Date          `json:"startDate"`
	EndDate          Date          `json:"endDate"`
	TotalPrice       int64         `json:"totalPrice"` // minor units
	Status           string        `json:"status"`
	PaymentMethod    PaymentMethod `json:"paymentMethod,omitempty"`
	AccessPin        string        `json:"accessPin,omitempty"`
}

func (b Booking) Nights() int { return Nights(b.StartDate, b.EndDate) }

// CreateBookingInput books a room for an existing guest.
type CreateBookingInput struct {
	Room          string        `json:"room"`
	User          string        `json:"user,omitempty"`
	StartDate     Date          `json:"startDate"`
	EndDate       Date          `json:"endDate"`
	TotalPrice    int64         `json:"totalPrice"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentName   string        `json:"paymentName,omitempty"`
}

// StaffBookingInput is the composite guest + booking payload posted by the
// front desk; the API registers the guest or reuses an existing account.
type StaffBookingInput struct {
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	NIN           string        `json:"NIN"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Address       string        `json:"address,omitempty"`
	Room          string        `json:"room"`
	StartDate     Date          `json:"startDate"`
	EndDate       Date          `json:"endDate"`
	TotalPrice    int64         `json:"totalPrice"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentName   string        `json:"paymentName"`
}

type StaffBookingResult struct {
	Booking    Booking
	IsNewGuest bool
}

// StagedBooking is the self-service selection carried from the date step
// to the confirm step.
type StagedBooking struct {
	RoomID     string `json:"roomId"`
	CheckIn    Date   `json:"checkIn"`
	CheckOut   Date   `json:"checkOut"`
	Guests     int    `json:"guests"`
	Nights     int    `json:"nights"`
	TotalPrice int64  `json:"totalPrice"` // minor units
	RoomPrice  int64  `json:"roomPrice"`
}
