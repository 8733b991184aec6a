package booking

import (
	"context"
	"errors"
	"strings"

	"luxe_haven/internal/domain"
)

// Confirmation is the "booking confirmed" page: a lookup by code plus the
// PDF download.
type Confirmation struct {
	api    domain.BookingAPI
	notify domain.Notifier
	hotel  string
}

func NewConfirmation(api domain.BookingAPI, n domain.Notifier, hotel string) *Confirmation {
	return &Confirmation{api: api, notify: n, hotel: hotel}
}

// Lookup returns the booking for code. The error text is what the page
// shows in place of the booking.
func (c *Confirmation) Lookup(ctx context.Context, code string) (domain.Booking, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Booking{}, domain.Invalid("code", "No confirmation code provided")
	}
	b, err := c.api.BookingByConfirmation(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Booking{}, domain.NotFound("Booking not found")
	}
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// Receipt renders b as a PDF. A failure is reported and leaves b as is.
func (c *Confirmation) Receipt(b domain.Booking, guest string) ([]byte, error) {
	pdf, err := RenderPDF(Summary{Hotel: c.hotel, Booking: b, Guest: guest})
	if err != nil {
		c.notify.Error("Failed to generate PDF. Please try again.")
		return nil, err
	}
	c.notify.Success("Booking confirmation downloaded")
	return pdf, nil
}
