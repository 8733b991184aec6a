package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"luxe_haven/internal/app"
	"luxe_haven/internal/booking"
	"luxe_haven/internal/domain"
)

type roomView struct {
	domain.Room
	DisplayName  string            `json:"displayName"`
	DisplayPrice string            `json:"displayPrice"`
	DeskStatus   domain.DeskStatus `json:"deskStatus"`
	Summary      string            `json:"description"`
}

func viewRoom(r domain.Room) roomView {
	return roomView{Room: r, DisplayName: r.DisplayName(), DisplayPrice: r.DisplayPrice(), DeskStatus: r.DeskStatus(), Summary: r.Description()}
}

func viewRooms(rs []domain.Room) []roomView {
	out := make([]roomView, 0, len(rs))
	for _, r := range rs {
		out = append(out, viewRoom(r))
	}
	return out
}

type listView[T any] struct {
	Items []T    `json:"items"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

type bookingView struct {
	domain.Booking
	RoomName     string `json:"roomName"`
	Nights       int    `json:"nights"`
	DisplayTotal string `json:"displayTotal"`
	CheckInLong  string `json:"checkInLong"`
	CheckOutLong string `json:"checkOutLong"`
}

func viewBooking(b domain.Booking) bookingView {
	return bookingView{
		Booking:      b,
		RoomName:     b.Room.DisplayName(),
		Nights:       b.Nights(),
		DisplayTotal: "$" + domain.FormatPrice(b.TotalPrice),
		CheckInLong:  b.StartDate.Long(),
		CheckOutLong: b.EndDate.Long(),
	}
}

type stagedView struct {
	Staged   *domain.StagedBooking  `json:"staged"`
	Progress []booking.ProgressItem `json:"progress"`
	Total    string                 `json:"displayTotal,omitempty"`
}

func (h *Handlers) mountGuest(m chi.Router) {
	m.Get("/v1/rooms", h.browseRooms)
	m.Get("/v1/rooms/{id}", h.getRoom)
	m.Post("/v1/rooms/{id}/dates", h.selectDates)
	m.Get("/v1/booking/staged", h.staged)
	m.Post("/v1/booking/checkout", h.gate(false, h.checkout))
	m.Get("/v1/bookings/confirmation/{code}", h.confirmation)
	m.Get("/v1/bookings/confirmation/{code}/pdf", h.confirmationPDF)
	m.Get("/v1/service-requests", h.gate(false, h.myRequests))
}

func (h *Handlers) browseRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	guests, _ := strconv.Atoi(q.Get("guests"))
	f := app.RoomFilter{Search: q.Get("search"), Category: q.Get("category"), Price: q.Get("price"), Guests: guests}

	// the store keeps the previous list when a refresh fails
	_ = h.Rooms.Fetch(r.Context())
	st := h.Rooms.State()
	rooms := f.Apply(st.Items)
	writeView(w, r, listView[roomView]{Items: viewRooms(rooms), Total: len(rooms), Error: st.Error})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Rooms.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, struct {
		Room     roomView               `json:"room"`
		Progress []booking.ProgressItem `json:"progress"`
	}{viewRoom(room), booking.Progress(booking.StepReserve)})
}

func (h *Handlers) selectDates(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CheckIn  domain.Date `json:"checkIn"`
		CheckOut domain.Date `json:"checkOut"`
		Guests   int         `json:"guests"`
	}
	if !decode(w, r, &in) {
		return
	}
	room, err := h.Rooms.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sb, err := h.Self.SelectDates(r.Context(), room, in.CheckIn, in.CheckOut, in.Guests)
	if err != nil {
		writeError(w, err)
		return
	}
	h.Nav.Navigate("/confirm-booking")
	writeValue(w, http.StatusOK, stagedView{Staged: &sb, Progress: booking.Progress(booking.StepConfirm), Total: "$" + domain.FormatPrice(sb.TotalPrice)})
}

func (h *Handlers) staged(w http.ResponseWriter, r *http.Request) {
	sb, ok, err := h.Self.Staged(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	v := stagedView{Progress: booking.Progress(booking.StepSelectDate)}
	if ok {
		v.Staged = &sb
		v.Progress = booking.Progress(booking.StepConfirm)
		v.Total = "$" + domain.FormatPrice(sb.TotalPrice)
	}
	writeValue(w, http.StatusOK, v)
}

func (h *Handlers) checkout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	}
	if !decode(w, r, &in) {
		return
	}
	b, err := h.Self.Checkout(r.Context(), in.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	if b.ConfirmationCode != "" {
		h.Nav.Navigate("/booking-confirmation/" + b.ConfirmationCode)
	}
	writeValue(w, http.StatusCreated, viewBooking(b))
}

func (h *Handlers) confirmation(w http.ResponseWriter, r *http.Request) {
	b, err := h.Confirm.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, viewBooking(b))
}

func (h *Handlers) confirmationPDF(w http.ResponseWriter, r *http.Request) {
	b, err := h.Confirm.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	guest := r.URL.Query().Get("guest")
	if guest == "" {
		if u, ok := h.Session.User(); ok {
			guest = u.FullName()
		}
	}
	pdf, err := h.Confirm.Receipt(b, guest)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "PDF generation failed", "Failed to generate PDF. Please try again.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+booking.PDFFilename(b)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

type requestView struct {
	domain.ServiceRequest
	ServiceName string `json:"serviceName"`
	Details     string `json:"details"`
	Completed   bool   `json:"completed"`
}

func (h *Handlers) myRequests(w http.ResponseWriter, r *http.Request) {
	_ = h.Requests.Fetch(r.Context())
	st := h.Requests.State()
	out := make([]requestView, 0, len(st.Items))
	for _, sr := range st.Items {
		out = append(out, requestView{ServiceRequest: sr, ServiceName: sr.ServiceName(), Details: sr.DescriptionOrDefault(), Completed: sr.Completed()})
	}
	writeView(w, r, listView[requestView]{Items: out, Total: len(out), Error: st.Error})
}
