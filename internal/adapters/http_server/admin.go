package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"luxe_haven/internal/app"
	"luxe_haven/internal/domain"
)

type staffView struct {
	domain.StaffMember
	FullName  string `json:"fullName"`
	RoleLabel string `json:"roleLabel"`
	IsActive  bool   `json:"isActive"`
}

type serviceView struct {
	domain.Service
	CategoryLabel string `json:"categoryLabel"`
	Minutes       int    `json:"minutes"`
}

func viewService(s domain.Service) serviceView {
	return serviceView{Service: s, CategoryLabel: s.Category.Label(), Minutes: int(s.Duration().Minutes())}
}

func viewStaff(m domain.StaffMember) staffView {
	return staffView{StaffMember: m, FullName: m.FullName(), RoleLabel: m.Role.Label(), IsActive: m.IsActive()}
}

func (h *Handlers) mountAdmin(m chi.Router) {
	m.Route("/v1/admin", func(r chi.Router) {
		r.Get("/rooms", h.gate(true, h.adminRooms))
		r.Post("/rooms", h.gate(true, h.createRoom))
		r.Patch("/rooms/{id}", h.gate(true, h.updateRoom))
		r.Delete("/rooms/{id}", h.gate(true, h.deleteRoom))
		r.Patch("/rooms/{id}/status", h.gate(true, h.roomStatus))

		r.Get("/services", h.gate(true, h.adminServices))
		r.Post("/services", h.gate(true, h.createService))
		r.Patch("/services/{id}", h.gate(true, h.updateService))
		r.Post("/services/{id}/toggle", h.gate(true, h.toggleService))

		r.Get("/staff", h.gate(true, h.adminStaff))
		r.Post("/staff", h.gate(true, h.createStaff))
		r.Patch("/staff/{id}", h.gate(true, h.updateStaff))
		r.Post("/staff/{id}/disable", h.gate(true, h.disableStaff))
		r.Patch("/staff/{id}/role", h.gate(true, h.staffRole))
	})
}

/********** rooms **********/

func (h *Handlers) adminRooms(w http.ResponseWriter, r *http.Request) {
	_ = h.Rooms.Fetch(r.Context())
	st := h.Rooms.State()
	rooms := app.RoomFilter{Search: r.URL.Query().Get("search"), Category: r.URL.Query().Get("category")}.Apply(st.Items)
	writeView(w, r, listView[roomView]{Items: viewRooms(rooms), Total: len(rooms), Error: st.Error})
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in app.RoomForm
	if !decode(w, r, &in) {
		return
	}
	room, err := h.Rooms.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusCreated, viewRoom(room))
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateRoomInput
	if !decode(w, r, &in) {
		return
	}
	room, err := h.Rooms.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewRoom(room))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Rooms.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// roomStatus accepts either an API status or a room-board status.
func (h *Handlers) roomStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status     domain.RoomStatus `json:"status"`
		DeskStatus domain.DeskStatus `json:"deskStatus"`
	}
	if !decode(w, r, &in) {
		return
	}
	id := chi.URLParam(r, "id")
	var (
		room domain.Room
		err  error
	)
	if in.DeskStatus != "" {
		room, err = h.Rooms.SetDeskStatus(r.Context(), id, in.DeskStatus)
	} else {
		room, err = h.Rooms.UpdateStatus(r.Context(), id, in.Status)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewRoom(room))
}

/********** services **********/

func (h *Handlers) adminServices(w http.ResponseWriter, r *http.Request) {
	_ = h.Services.Fetch(r.Context())
	st := h.Services.State()
	out := make([]serviceView, 0, len(st.Items))
	for _, s := range st.Items {
		out = append(out, viewService(s))
	}
	writeView(w, r, listView[serviceView]{Items: out, Total: len(out), Error: st.Error})
}

func (h *Handlers) createService(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateServiceInput
	if !decode(w, r, &in) {
		return
	}
	s, err := h.Services.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusCreated, viewService(s))
}

func (h *Handlers) updateService(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateServiceInput
	if !decode(w, r, &in) {
		return
	}
	s, err := h.Services.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewService(s))
}

func (h *Handlers) toggleService(w http.ResponseWriter, r *http.Request) {
	s, err := h.Services.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewService(s))
}

/********** staff **********/

func (h *Handlers) adminStaff(w http.ResponseWriter, r *http.Request) {
	_ = h.Staff.Fetch(r.Context())
	st := h.Staff.State()
	q := r.URL.Query().Get("search")
	out := []staffView{}
	for _, m := range st.Items {
		if m.MatchesQuery(q) {
			out = append(out, viewStaff(m))
		}
	}
	writeView(w, r, listView[staffView]{Items: out, Total: len(out), Error: st.Error})
}

func (h *Handlers) createStaff(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateStaffInput
	if !decode(w, r, &in) {
		return
	}
	m, err := h.Staff.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusCreated, viewStaff(m))
}

func (h *Handlers) updateStaff(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateStaffInput
	if !decode(w, r, &in) {
		return
	}
	m, err := h.Staff.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewStaff(m))
}

func (h *Handlers) disableStaff(w http.ResponseWriter, r *http.Request) {
	m, err := h.Staff.Disable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewStaff(m))
}

func (h *Handlers) staffRole(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role domain.StaffRole `json:"role"`
	}
	if !decode(w, r, &in) {
		return
	}
	m, err := h.Staff.ChangeRole(r.Context(), chi.URLParam(r, "id"), in.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeValue(w, http.StatusOK, viewStaff(m))
}
