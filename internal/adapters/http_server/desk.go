package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"luxe_haven/internal/booking"
	"luxe_haven/internal/domain"
)

type formView struct {
	Step         string                 `json:"step"`
	Guest        booking.Guest          `json:"guest"`
	Details      *detailsView           `json:"details,omitempty"`
	Submitting   bool                   `json:"submitting"`
	PaymentTypes []domain.PaymentMethod `json:"paymentMethods"`
}

type detailsView struct {
	booking.Details
	Nights       int    `json:"nights"`
	Total        int64  `json:"totalPrice"`
	DisplayTotal string `json:"displayTotal"`
}

var paymentMethods = []domain.PaymentMethod{domain.PayCash, domain.PayTransfer, domain.PayCard, domain.PayPOS, domain.PayOnline}

func (h *Handlers) formView() formView {
	v := formView{Submitting: h.Form.Submitting(), PaymentTypes: paymentMethods}
	switch s := h.Form.Step().(type) {
	case booking.GuestStep:
		v.Step, v.Guest = s.Name(), s.Guest
	case booking.BookingStep:
		v.Step, v.Guest = s.Name(), s.Guest
		v.Details = &detailsView{
			Details:      s.Details,
			Nights:       s.Details.Nights(),
			Total:        s.Details.Total(),
			DisplayTotal: "$" + domain.FormatPrice(s.Details.Total()),
		}
	}
	return v
}

func (h *Handlers) mountDesk(m chi.Router) {
	m.Get("/v1/dashboard", h.gate(false, h.dashboard))
	m.Post("/v1/desk/guests", h.gate(false, h.registerGuest))
	m.Route("/v1/desk/booking", func(r chi.Router) {
		r.Get("/", h.gate(false, h.getForm))
		r.Put("/guest", h.gate(false, h.setGuest))
		r.Post("/continue", h.gate(false, h.continueForm))
		r.Post("/back", h.gate(false, h.backForm))
		r.Put("/details", h.gate(false, h.setDetails))
		r.Post("/rooms", h.gate(false, h.openPicker))
		r.Get("/rooms", h.gate(false, h.pickerState))
		r.Post("/rooms/{id}", h.gate(false, h.pickRoom))
		r.Post("/submit", h.gate(false, h.submitForm))
		r.Post("/reset", h.gate(false, h.resetForm))
	})
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	errs := h.Dashboard.LoadAll(r.Context())
	failed := map[string]string{}
	for name, err := range errs {
		failed[name] = domain.UserMessage(err, err.Error())
	}
	view := map[string]any{
		"rooms":    len(h.Rooms.Items()),
		"services": len(h.Services.Items()),
		"errors":   failed,
	}
	if h.Session.IsAdmin() {
		view["staff"] = len(h.Staff.Items())
	}
	occupied := 0
	for _, rm := range h.Rooms.Items() {
		if rm.DeskStatus() == domain.DeskOccupied {
			occupied++
		}
	}
	view["occupied"] = occupied
	writeValue(w, http.StatusOK, view)
}

func (h *Handlers) registerGuest(w http.ResponseWriter, r *http.Request) {
	var g booking.Guest
	if !decode(w, r, &g) {
		return
	}
	u, err := h.Form.RegisterGuest(r.Context(), g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusCreated, u)
}

func (h *Handlers) getForm(w http.ResponseWriter, r *http.Request) {
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) setGuest(w http.ResponseWriter, r *http.Request) {
	var g booking.Guest
	if !decode(w, r, &g) {
		return
	}
	h.Form.SetGuest(g)
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) continueForm(w http.ResponseWriter, r *http.Request) {
	if err := h.Form.Continue(); err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) backForm(w http.ResponseWriter, r *http.Request) {
	h.Form.Back()
	h.Picker.Close()
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) setDetails(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CheckIn       *domain.Date          `json:"checkIn"`
		CheckOut      *domain.Date          `json:"checkOut"`
		PaymentMethod *domain.PaymentMethod `json:"paymentMethod"`
		PaymentName   *string               `json:"paymentName"`
	}
	if !decode(w, r, &in) {
		return
	}
	step, ok := h.Form.Step().(booking.BookingStep)
	if !ok {
		writeProblem(w, http.StatusConflict, "Conflict", "Please complete guest details first")
		return
	}
	d := step.Details
	if in.CheckIn != nil || in.CheckOut != nil {
		ci, co := d.CheckIn, d.CheckOut
		if in.CheckIn != nil {
			ci = *in.CheckIn
		}
		if in.CheckOut != nil {
			co = *in.CheckOut
		}
		if !ci.Equal(d.CheckIn.Time) || !co.Equal(d.CheckOut.Time) {
			h.Picker.Close()
		}
		h.Form.SetDates(ci, co)
	}
	if in.PaymentMethod != nil || in.PaymentName != nil {
		m, name := d.PaymentMethod, d.PaymentName
		if in.PaymentMethod != nil {
			m = *in.PaymentMethod
		}
		if in.PaymentName != nil {
			name = *in.PaymentName
		}
		h.Form.SetPayment(m, name)
	}
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) openPicker(w http.ResponseWriter, r *http.Request) {
	step, ok := h.Form.Step().(booking.BookingStep)
	if !ok {
		writeProblem(w, http.StatusConflict, "Conflict", "Please complete guest details first")
		return
	}
	if err := h.Picker.Open(r.Context(), step.Details.CheckIn, step.Details.CheckOut); err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, h.pickerView())
}

func (h *Handlers) pickerView() any {
	st := h.Picker.State()
	return struct {
		booking.PickerState
		Rooms []roomView `json:"rooms"`
	}{st, viewRooms(st.Rooms)}
}

func (h *Handlers) pickerState(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("category") || q.Has("q") {
		h.Picker.Filter(q.Get("category"), q.Get("q"))
	}
	writeView(w, r, h.pickerView())
}

func (h *Handlers) pickRoom(w http.ResponseWriter, r *http.Request) {
	step, ok := h.Form.Step().(booking.BookingStep)
	if !ok {
		writeProblem(w, http.StatusConflict, "Conflict", "Please complete guest details first")
		return
	}
	room, err := h.Picker.Select(chi.URLParam(r, "id"), step.Details.CheckIn, step.Details.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}
	h.Form.SelectRoom(room)
	writeValue(w, http.StatusOK, h.formView())
}

func (h *Handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.Form.Submit(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusCreated, map[string]any{
		"booking":    viewBooking(res.Booking),
		"isNewGuest": res.IsNewGuest,
		"form":       h.formView(),
	})
}

func (h *Handlers) resetForm(w http.ResponseWriter, r *http.Request) {
	h.Form.Reset()
	h.Picker.Close()
	writeValue(w, http.StatusOK, h.formView())
}
