package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"luxe_haven/internal/domain"
)

var _ domain.BookingAPI = (*Client)(nil)

func (c *Client) CreateBooking(ctx context.Context, in domain.CreateBookingInput) (domain.Booking, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/bookings", path: "/bookings", body: in})
	if err != nil {
		return domain.Booking{}, err
	}
	b, err := unwrapOne[domain.Booking](body, "booking")
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// CreateStaffBooking posts the combined guest and booking payload. The
// Idempotency-Key is fixed per call, so a refresh replay reuses it.
func (c *Client) CreateStaffBooking(ctx context.Context, in domain.StaffBookingInput) (domain.StaffBookingResult, error) {
	body, err := c.do(ctx, request{
		method:  http.MethodPost,
		route:   "/bookings/staff-booking",
		path:    "/bookings/staff-booking",
		body:    in,
		headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	})
	if err != nil {
		return domain.StaffBookingResult{}, err
	}
	b, _ := unwrapOne[domain.Booking](body, "booking")
	return domain.StaffBookingResult{
		Booking:    b,
		IsNewGuest: firstBool(decodeMap(body), "data.guest.isNewGuest", "guest.isNewGuest"),
	}, nil
}

func (c *Client) BookingByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	body, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/bookings/confirmation/{code}",
		path:   "/bookings/confirmation/" + url.PathEscape(code),
	})
	if err != nil {
		return domain.Booking{}, err
	}
	b, err := unwrapOne[domain.Booking](body, "booking")
	if err != nil || (b.ID == "" && b.ConfirmationCode == "") {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

// RegisterGuest creates a guest account on behalf of a walk-in.
func (c *Client) RegisterGuest(ctx context.Context, in domain.GuestRegistration) (domain.User, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/users/staff-register", path: "/users/staff-register", body: in})
	if err != nil {
		return domain.User{}, err
	}
	return unwrapOne[domain.User](body, "user")
}
