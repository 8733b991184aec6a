// Package device assembles one front-desk device: its session, API client,
// stores, booking flows and view handlers.
package device

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"luxe_haven/internal/adapters/api"
	server "luxe_haven/internal/adapters/http_server"
	"luxe_haven/internal/adapters/ui"
	"luxe_haven/internal/app"
	"luxe_haven/internal/booking"
	"luxe_haven/internal/domain"
	"luxe_haven/internal/session"
)

type Options struct {
	APIBase        string
	APIRPS         int
	APITimeout     time.Duration
	SessionTTL     time.Duration
	PreloadWorkers int
	HotelName      string
	// Durable holds the tokens and profile; Transient the staged booking.
	Durable   domain.KV
	Transient domain.KV
	Logger    zerolog.Logger
}

type Device struct {
	Session  *session.Session
	Client   *api.Client
	Toasts   *ui.Toasts
	Router   *ui.Router
	Handlers *server.Handlers
}

// New builds the device and loads any saved session.
func New(ctx context.Context, o Options) (*Device, error) {
	if o.Durable == nil || o.Transient == nil {
		return nil, fmt.Errorf("device: durable and transient stores are required")
	}
	l := o.Logger
	sess := session.New(o.Durable, l)
	if err := sess.Load(ctx); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	toasts := ui.NewToasts(l, 50)
	start := session.LoginRoute
	if sess.Authenticated() {
		start = session.DashboardRoute
	}
	router := ui.NewRouter(l, start)

	client, err := api.New(api.Config{
		Base:      o.APIBase,
		RPS:       o.APIRPS,
		Timeout:   o.APITimeout,
		Tokens:    sess,
		Notifier:  toasts,
		Navigator: router,
		Logger:    l,
	})
	if err != nil {
		return nil, err
	}

	rooms := app.NewRoomStore(client, toasts, l)
	services := app.NewServiceStore(client, toasts, l)
	staff := app.NewStaffStore(client, toasts, l)
	requests := app.NewRequestStore(client, toasts, l)
	dash := app.NewDashboard(o.PreloadWorkers, l).
		Add("rooms", rooms).
		Add("services", services).
		Add("staff", adminOnly{sess, staff})

	form := booking.NewStaffForm(client, toasts, l)
	form.OnSuccess = func(domain.StaffBookingResult) {
		// a booking flips a room to occupied
		if err := rooms.Fetch(context.Background()); err != nil {
			l.Warn().Err(err).Msg("refresh rooms after booking")
		}
	}

	h := &server.Handlers{
		Session:   sess,
		Auth:      client,
		Nav:       router,
		Toasts:    toasts,
		Hotel:     o.HotelName,
		Rooms:     rooms,
		Services:  services,
		Staff:     staff,
		Requests:  requests,
		Dashboard: dash,
		Form:      form,
		Picker:    booking.NewRoomPicker(client, toasts),
		Self:      booking.NewSelfService(client, o.Transient, o.SessionTTL, toasts, l),
		Confirm:   booking.NewConfirmation(client, toasts, o.HotelName),
	}
	go resetOnSignOut(ctx, sess, h)
	return &Device{Session: sess, Client: client, Toasts: toasts, Router: router, Handlers: h}, nil
}

// Close detaches the stores; call it once the view server stops serving.
func (d *Device) Close() { d.Handlers.DetachStores() }

// resetOnSignOut empties the stores when the session ends without a logout,
// e.g. a refresh token the API no longer accepts.
func resetOnSignOut(ctx context.Context, sess *session.Session, h *server.Handlers) {
	ch, cancel := sess.Subscribe()
	defer cancel()
	signedIn := false
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-ch:
			if signedIn && !snap.Authenticated {
				h.ResetStores()
			}
			signedIn = snap.Authenticated
		}
	}
}

// adminOnly skips the staff list for non-admin sessions; the API would
// refuse it anyway.
type adminOnly struct {
	sess  *session.Session
	inner interface{ Fetch(context.Context) error }
}

func (a adminOnly) Fetch(ctx context.Context) error {
	if !a.sess.IsAdmin() {
		return nil
	}
	return a.inner.Fetch(ctx)
}
