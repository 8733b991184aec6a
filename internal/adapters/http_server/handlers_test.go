package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	server "luxe_haven/internal/adapters/http_server"
	redisad "luxe_haven/internal/adapters/redis"
	"luxe_haven/internal/adapters/ui"
	"luxe_haven/internal/app"
	"luxe_haven/internal/booking"
	"luxe_haven/internal/domain"
	"luxe_haven/internal/session"
)

// ---- fake hotel API ----

type fakeHotel struct {
	rooms       []domain.Room
	services    []domain.Service
	staff       []domain.StaffMember
	staffPosts  []domain.StaffBookingInput
	loginResult domain.AuthResult
	loginErr    error
}

func (f *fakeHotel) ListRooms(ctx context.Context) ([]domain.Room, error) { return f.rooms, nil }
func (f *fakeHotel) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}
func (f *fakeHotel) AvailableRooms(ctx context.Context, s, e domain.Date) ([]domain.Room, error) {
	return f.rooms, nil
}
func (f *fakeHotel) CreateRoom(ctx context.Context, in domain.CreateRoomInput) (domain.Room, error) {
	return domain.Room{ID: "new", Number: in.Number, Alphabet: in.Alphabet, Category: in.Category, Price: in.Price}, nil
}
func (f *fakeHotel) UpdateRoom(ctx context.Context, id string, in domain.UpdateRoomInput) (domain.Room, error) {
	return domain.Room{ID: id}, nil
}
func (f *fakeHotel) DeleteRoom(ctx context.Context, id string) error { return nil }
func (f *fakeHotel) UpdateRoomStatus(ctx context.Context, id string, s domain.RoomStatus) (domain.Room, error) {
	return domain.Room{ID: id, Status: s}, nil
}
func (f *fakeHotel) ListServices(ctx context.Context) ([]domain.Service, error) { return f.services, nil }
func (f *fakeHotel) CreateService(ctx context.Context, in domain.CreateServiceInput) (domain.Service, error) {
	return domain.Service{ID: "s-new", Name: in.Name}, nil
}
func (f *fakeHotel) UpdateService(ctx context.Context, id string, in domain.UpdateServiceInput) (domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			if in.Active != nil {
				s.Active = *in.Active
			}
			return s, nil
		}
	}
	return domain.Service{}, domain.ErrNotFound
}
func (f *fakeHotel) ListStaff(ctx context.Context) ([]domain.StaffMember, error) { return f.staff, nil }
func (f *fakeHotel) CreateStaff(ctx context.Context, in domain.CreateStaffInput) (domain.StaffMember, error) {
	return domain.StaffMember{ID: "m-new"}, nil
}
func (f *fakeHotel) UpdateStaff(ctx context.Context, id string, in domain.UpdateStaffInput) (domain.StaffMember, error) {
	return domain.StaffMember{ID: id}, nil
}
func (f *fakeHotel) DisableStaff(ctx context.Context, id string) (domain.StaffMember, error) {
	return domain.StaffMember{ID: id}, nil
}
func (f *fakeHotel) ChangeStaffRole(ctx context.Context, id string, role domain.StaffRole) (domain.StaffMember, error) {
	return domain.StaffMember{ID: id, Role: role}, nil
}
func (f *fakeHotel) MyServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	return []domain.ServiceRequest{{ID: "q1", Type: "Towels"}}, nil
}
func (f *fakeHotel) CreateBooking(ctx context.Context, in domain.CreateBookingInput) (domain.Booking, error) {
	return domain.Booking{ID: "b2", ConfirmationCode: "LH-2"}, nil
}
func (f *fakeHotel) CreateStaffBooking(ctx context.Context, in domain.StaffBookingInput) (domain.StaffBookingResult, error) {
	f.staffPosts = append(f.staffPosts, in)
	return domain.StaffBookingResult{Booking: domain.Booking{ID: "b1", ConfirmationCode: "LH-1"}}, nil
}
func (f *fakeHotel) BookingByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	if code == "LH-1" {
		return domain.Booking{
			ID:               "b1",
			ConfirmationCode: "LH-1",
			Room:             domain.RoomRef{ID: "r1", Number: 204, Alphabet: "B", Category: domain.CategoryDeluxe},
			StartDate:        domain.NewDate(2025, time.March, 1),
			EndDate:          domain.NewDate(2025, time.March, 4),
			TotalPrice:       45000,
		}, nil
	}
	return domain.Booking{}, domain.ErrNotFound
}
func (f *fakeHotel) RegisterGuest(ctx context.Context, in domain.GuestRegistration) (domain.User, error) {
	return domain.User{ID: "g1", FirstName: in.FirstName}, nil
}
func (f *fakeHotel) Login(ctx context.Context, c domain.Credentials) (domain.AuthResult, error) {
	return f.loginResult, f.loginErr
}
func (f *fakeHotel) Signup(ctx context.Context, in domain.SignupInput) (domain.AuthResult, error) {
	return f.loginResult, f.loginErr
}
func (f *fakeHotel) ForgotPassword(ctx context.Context, email string) error           { return nil }
func (f *fakeHotel) ResetPassword(ctx context.Context, token, password string) error { return nil }

// ---- harness ----

type env struct {
	srv    *httptest.Server
	hotel  *fakeHotel
	sess   *session.Session
	router *ui.Router
	rooms  *app.RoomStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	kv := redisad.NewWithClient(c, "test")

	l := zerolog.Nop()
	hotel := &fakeHotel{
		rooms: []domain.Room{
			{ID: "r1", Number: 204, Alphabet: "B", Category: domain.CategoryDeluxe, Price: 15000, MaxGuest: 2},
			{ID: "r2", Number: 101, Alphabet: "A", Category: domain.CategoryStandard, Price: 8000, MaxGuest: 1, IsBooked: true},
		},
		services: []domain.Service{{ID: "s1", Name: "Spa", Active: true}, {ID: "s2", Name: "Laundry", Active: true}},
		staff:    []domain.StaffMember{{ID: "m1", FirstName: "Ada", LastName: "Obi", Email: "ada@hotel.test", Role: domain.RoleAdmin}},
	}
	sess := session.New(kv.Scoped("local"), l)
	toasts := ui.NewToasts(l, 20)
	router := ui.NewRouter(l, session.LoginRoute)
	rooms := app.NewRoomStore(hotel, toasts, l)
	services := app.NewServiceStore(hotel, toasts, l)
	staff := app.NewStaffStore(hotel, toasts, l)

	h := &server.Handlers{
		Session:   sess,
		Auth:      hotel,
		Nav:       router,
		Toasts:    toasts,
		Hotel:     "Luxe Haven",
		Rooms:     rooms,
		Services:  services,
		Staff:     staff,
		Requests:  app.NewRequestStore(hotel, toasts, l),
		Dashboard: app.NewDashboard(2, l).Add("rooms", rooms).Add("services", services),
		Form:      booking.NewStaffForm(hotel, toasts, l),
		Picker:    booking.NewRoomPicker(hotel, toasts),
		Self:      booking.NewSelfService(hotel, kv.Scoped("session"), time.Hour, toasts, l),
		Confirm:   booking.NewConfirmation(hotel, toasts, "Luxe Haven"),
	}
	s := server.New()
	s.MountHandlers(h)
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return &env{srv: ts, hotel: hotel, sess: sess, router: router, rooms: rooms}
}

func (e *env) signIn(t *testing.T, role domain.StaffRole) {
	t.Helper()
	if err := e.sess.SignIn(context.Background(), "tok", "ref", domain.User{ID: "u1", FirstName: "Ada", Role: role}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

func (e *env) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, e.srv.URL+path, rd)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != 200 || string(body) != "ok" {
		t.Fatalf("unexpected: %d %q", resp.StatusCode, body)
	}
}

func TestBrowseRooms_FilterAndETag(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, http.MethodGet, "/v1/rooms?category=deluxe", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct {
		Items []struct {
			ID           string `json:"_id"`
			DisplayName  string `json:"displayName"`
			DisplayPrice string `json:"displayPrice"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || out.Items[0].DisplayName != "Deluxe Room B204" || out.Items[0].DisplayPrice != "150.00" {
		t.Fatalf("unexpected body: %s", body)
	}

	etag := resp.Header.Get("ETag")
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/v1/rooms?category=deluxe", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp2.StatusCode)
	}
}

func TestAdminViews_RequireRole(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, http.MethodGet, "/v1/admin/staff", nil)
	if resp.StatusCode != http.StatusUnauthorized || !strings.Contains(resp.Header.Get("Content-Type"), "problem+json") {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
	if e.router.Current() != "/login" {
		t.Fatalf("route = %q", e.router.Current())
	}

	e.signIn(t, domain.RoleStaff)
	resp, _ = e.do(t, http.MethodGet, "/v1/admin/staff", nil)
	if resp.StatusCode != http.StatusForbidden || e.router.Current() != "/dashboard" {
		t.Fatalf("unexpected: %d route=%s", resp.StatusCode, e.router.Current())
	}

	e.signIn(t, domain.RoleSuperAdmin)
	resp, body = e.do(t, http.MethodGet, "/v1/admin/staff?search=ada", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"roleLabel":"Admin"`) {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
}

func TestToggleService(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, domain.RoleAdmin)
	_, _ = e.do(t, http.MethodGet, "/v1/admin/services", nil)

	resp, body := e.do(t, http.MethodPost, "/v1/admin/services/s1/toggle", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"active":false`) {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
	_, body = e.do(t, http.MethodGet, "/v1/notifications", nil)
	if !strings.Contains(string(body), "Service suspended successfully") {
		t.Fatalf("notifications: %s", body)
	}
}

func TestStaffBookingFlow(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, domain.RoleStaff)

	resp, body := e.do(t, http.MethodPost, "/v1/desk/booking/continue", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(string(body), "First name and last name are required") {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}

	e.do(t, http.MethodPut, "/v1/desk/booking/guest", booking.Guest{FirstName: "Tunde", LastName: "Bello", NIN: "555", Phone: "0803"})
	resp, body = e.do(t, http.MethodPost, "/v1/desk/booking/continue", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"step":"booking"`) {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, http.MethodPost, "/v1/desk/booking/submit", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(string(body), "Please select a room") {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
	if len(e.hotel.staffPosts) != 0 {
		t.Fatalf("network call made without a room")
	}

	e.do(t, http.MethodPut, "/v1/desk/booking/details", map[string]string{"checkIn": "2025-03-01", "checkOut": "2025-03-04", "paymentMethod": "card"})
	resp, _ = e.do(t, http.MethodPost, "/v1/desk/booking/rooms", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("open picker: %d", resp.StatusCode)
	}
	resp, body = e.do(t, http.MethodPost, "/v1/desk/booking/rooms/r1", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"totalPrice":45000`) {
		t.Fatalf("select: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, http.MethodPost, "/v1/desk/booking/submit", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %d %s", resp.StatusCode, body)
	}
	if len(e.hotel.staffPosts) != 1 {
		t.Fatalf("posts = %d", len(e.hotel.staffPosts))
	}
	p := e.hotel.staffPosts[0]
	if p.Room != "r1" || p.TotalPrice != 45000 || p.PaymentMethod != domain.PayCard || p.PaymentName != "Tunde Bello" {
		t.Fatalf("payload = %+v", p)
	}
	if !strings.Contains(string(body), `"step":"guest"`) {
		t.Fatalf("form not reset: %s", body)
	}
}

func TestSelfServiceAndConfirmation(t *testing.T) {
	e := newEnv(t)

	resp, body := e.do(t, http.MethodPost, "/v1/rooms/r1/dates", map[string]any{"checkIn": "2025-03-01", "checkOut": "2025-03-04", "guests": 3})
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(string(body), "up to 2 guests") {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, http.MethodPost, "/v1/rooms/r1/dates", map[string]any{"checkIn": "2025-03-01", "checkOut": "2025-03-04", "guests": 2})
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"nights":3`) {
		t.Fatalf("unexpected: %d %s", resp.StatusCode, body)
	}
	_, body = e.do(t, http.MethodGet, "/v1/booking/staged", nil)
	if !strings.Contains(string(body), `"roomId":"r1"`) || !strings.Contains(string(body), `"displayTotal":"$450.00"`) {
		t.Fatalf("staged: %s", body)
	}

	for _, path := range []string{"/v1/bookings/confirmation/nope", "/v1/bookings/confirmation/nope/pdf"} {
		resp, body = e.do(t, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusNotFound || !strings.Contains(string(body), "Booking not found") {
			t.Fatalf("%s: expected 404, got %d %s", path, resp.StatusCode, body)
		}
	}
	resp, body = e.do(t, http.MethodGet, "/v1/bookings/confirmation/LH-1", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"nights":3`) {
		t.Fatalf("confirmation: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, http.MethodGet, "/v1/bookings/confirmation/LH-1/pdf", nil)
	if resp.StatusCode != 200 || resp.Header.Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("pdf: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestLoginAndLogout(t *testing.T) {
	e := newEnv(t)
	e.hotel.loginErr = domain.ErrUnauthorized
	resp, _ := e.do(t, http.MethodPost, "/v1/login", domain.Credentials{Email: "a@b.c", Password: "x"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	e.hotel.loginErr = nil
	e.hotel.loginResult = domain.AuthResult{AccessToken: "a1", RefreshToken: "r1", User: domain.User{ID: "u1", Role: domain.RoleAdmin}}
	resp, body := e.do(t, http.MethodPost, "/v1/login", domain.Credentials{Email: "a@b.c", Password: "x"})
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"isAdmin":true`) {
		t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	if e.router.Current() != "/dashboard" || e.sess.AccessToken() != "a1" {
		t.Fatalf("route=%s token=%s", e.router.Current(), e.sess.AccessToken())
	}

	resp, body = e.do(t, http.MethodGet, "/v1/dashboard", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"occupied":1`) {
		t.Fatalf("dashboard: %d %s", resp.StatusCode, body)
	}

	if len(e.rooms.Items()) == 0 {
		t.Fatalf("dashboard did not load rooms")
	}

	e.do(t, http.MethodPost, "/v1/logout", nil)
	if e.sess.Authenticated() || e.router.Current() != "/login" {
		t.Fatalf("still signed in")
	}
	if n := len(e.rooms.Items()); n != 0 {
		t.Fatalf("rooms of the previous user kept: %d", n)
	}
}

func TestStaffBooking_ChangedDatesNeedFreshRoomSelection(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, domain.RoleStaff)

	e.do(t, http.MethodPut, "/v1/desk/booking/guest", booking.Guest{FirstName: "Tunde", LastName: "Bello", NIN: "555", Phone: "0803"})
	e.do(t, http.MethodPost, "/v1/desk/booking/continue", nil)
	e.do(t, http.MethodPut, "/v1/desk/booking/details", map[string]string{"checkIn": "2025-03-01", "checkOut": "2025-03-04"})
	if resp, _ := e.do(t, http.MethodPost, "/v1/desk/booking/rooms", nil); resp.StatusCode != 200 {
		t.Fatalf("open picker: %d", resp.StatusCode)
	}

	_, body := e.do(t, http.MethodPut, "/v1/desk/booking/details", map[string]string{"checkIn": "2025-06-01", "checkOut": "2025-06-10"})
	if !strings.Contains(string(body), `"checkIn":"2025-06-01"`) {
		t.Fatalf("dates not updated: %s", body)
	}
	_, body = e.do(t, http.MethodGet, "/v1/desk/booking/rooms", nil)
	if !strings.Contains(string(body), `"open":false`) {
		t.Fatalf("picker still open: %s", body)
	}

	resp, body := e.do(t, http.MethodPost, "/v1/desk/booking/rooms/r1", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", resp.StatusCode, body)
	}
	_, body = e.do(t, http.MethodGet, "/v1/desk/booking/", nil)
	if strings.Contains(string(body), `"room":{`) {
		t.Fatalf("room from the old range was selected: %s", body)
	}
}
