// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"luxe_haven/internal/adapters/api"
	"luxe_haven/internal/adapters/ui"
	"luxe_haven/internal/app"
	"luxe_haven/internal/booking"
	"luxe_haven/internal/domain"
	"luxe_haven/internal/session"
)

// Handlers serves the front-desk views of this device as JSON.
type Handlers struct {
	Session *session.Session
	Auth    domain.AuthAPI
	Nav     domain.Navigator
	Toasts  *ui.Toasts
	Hotel   string

	Rooms     *app.RoomStore
	Services  *app.ServiceStore
	Staff     *app.StaffStore
	Requests  *app.RequestStore
	Dashboard *app.Dashboard

	Form    *booking.StaffForm
	Picker  *booking.RoomPicker
	Self    *booking.SelfService
	Confirm *booking.Confirmation
}

// ResetStores drops what the last user loaded, so the next sign-in starts
// from empty lists.
func (h *Handlers) ResetStores() {
	h.Rooms.Reset()
	h.Services.Reset()
	h.Staff.Reset()
	h.Requests.Reset()
}

// DetachStores is the shutdown path: in-flight calls stop touching the stores.
func (h *Handlers) DetachStores() {
	h.Rooms.Detach()
	h.Services.Detach()
	h.Staff.Detach()
	h.Requests.Detach()
}

type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	h.mountAuth(s.mux)
	h.mountGuest(s.mux)
	h.mountAdmin(s.mux)
	h.mountDesk(s.mux)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemFields(w, status, title, detail, nil)
}

func writeProblemFields(w http.ResponseWriter, status int, title, detail string, fields map[string][]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Fields: fields}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps an error from a store, flow or the API to a problem.
func writeError(w http.ResponseWriter, err error) {
	if ve := domain.IsValidationError(err); ve != nil {
		writeProblemFields(w, http.StatusUnprocessableEntity, "Invalid input", ve.Message(), ve.Fields())
		return
	}
	var ae *api.APIError
	switch {
	case errors.Is(err, domain.ErrLoginRequired), errors.Is(err, domain.ErrSessionExpired):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Please log in to continue")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", domain.UserMessage(err, "Access denied"))
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", domain.UserMessage(err, "not found"))
	case errors.Is(err, domain.ErrDetached), errors.Is(err, booking.ErrSubmitting):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, api.ErrNetwork):
		writeProblem(w, http.StatusServiceUnavailable, "Upstream Unavailable", domain.UserMessage(err, ""))
	case errors.As(err, &ae):
		status := ae.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		writeProblem(w, status, http.StatusText(status), ae.Message)
	default:
		log.Error().Err(err).Msg("unhandled view error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeView writes v as JSON with a weak ETag, answering 304 when the
// client already has it.
func writeView(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func writeValue(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, body)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// gate wraps views that need a session, or an admin session.
func (h *Handlers) gate(admin bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.Session.RequireRole(h.Nav, admin); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}
