package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"luxe_haven/internal/adapters/ui"
	"luxe_haven/internal/domain"
	"luxe_haven/internal/session"
)

type sessionView struct {
	Hotel         string       `json:"hotel"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Role          string       `json:"role,omitempty"`
	IsAdmin       bool         `json:"isAdmin"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	Route         string       `json:"route"`
}

func (h *Handlers) mountAuth(m chi.Router) {
	m.Get("/v1/session", h.getSession)
	m.Post("/v1/login", h.login)
	m.Post("/v1/signup", h.signup)
	m.Post("/v1/logout", h.logout)
	m.Post("/v1/forgot-password", h.forgotPassword)
	m.Post("/v1/reset-password/{token}", h.resetPassword)
	m.Get("/v1/notifications", h.notifications)
	m.Get("/v1/route", h.route)
}

func (h *Handlers) sessionView() sessionView {
	snap := h.Session.Snapshot()
	v := sessionView{Hotel: h.Hotel, Authenticated: snap.Authenticated, User: snap.User, IsAdmin: h.Session.IsAdmin(), Route: h.Nav.Current()}
	if snap.User != nil {
		v.Role = string(snap.User.EffectiveRole())
	}
	if exp, ok := h.Session.TokenExpiry(); ok {
		v.ExpiresAt = &exp
	}
	return v
}

func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	writeValue(w, http.StatusOK, h.sessionView())
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in domain.Credentials
	if !decode(w, r, &in) {
		return
	}
	v := domain.NewValidationError()
	if in.Email == "" {
		v.Add("email", "Email is required")
	}
	if in.Password == "" {
		v.Add("password", "Password is required")
	}
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		writeLoginError(w, err, "Invalid email or password")
		return
	}
	h.signIn(w, r, res, "Login successful")
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var in domain.SignupInput
	if !decode(w, r, &in) {
		return
	}
	res, err := h.Auth.Signup(r.Context(), in)
	if err != nil {
		writeLoginError(w, err, "Signup failed")
		return
	}
	h.signIn(w, r, res, "Account created successfully")
}

// auth endpoints raise no toast of their own, so the screen shows the text
func writeLoginError(w http.ResponseWriter, err error, fallback string) {
	if domain.IsValidationError(err) != nil {
		writeError(w, err)
		return
	}
	writeProblem(w, http.StatusUnauthorized, "Unauthorized", domain.UserMessage(err, fallback))
}

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request, res domain.AuthResult, msg string) {
	if err := h.Session.SignIn(r.Context(), res.AccessToken, res.RefreshToken, res.User); err != nil {
		log.Error().Err(err).Msg("persist session")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not save session")
		return
	}
	if res.User.EffectiveRole() == domain.RoleGuest {
		h.Nav.Navigate("/")
	} else {
		h.Nav.Navigate(session.DashboardRoute)
	}
	h.Toasts.Success(msg)
	writeValue(w, http.StatusOK, h.sessionView())
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Clear(r.Context()); err != nil {
		log.Warn().Err(err).Msg("clear session store")
	}
	h.Form.Reset()
	h.Picker.Close()
	h.ResetStores()
	h.Nav.Navigate(session.LoginRoute)
	h.Toasts.Success("Logged out successfully")
	writeValue(w, http.StatusOK, h.sessionView())
}

func (h *Handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" {
		writeError(w, domain.Invalid("email", "Email is required"))
		return
	}
	if err := h.Auth.ForgotPassword(r.Context(), in.Email); err != nil {
		writeLoginError(w, err, "Failed to send reset email")
		return
	}
	writeValue(w, http.StatusAccepted, map[string]string{"message": "Password reset link sent to your email"})
}

func (h *Handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decode(w, r, &in) {
		return
	}
	switch {
	case len(in.Password) < 8:
		writeError(w, domain.Invalid("password", "Password must be at least 8 characters"))
		return
	case in.ConfirmPassword != "" && in.ConfirmPassword != in.Password:
		writeError(w, domain.Invalid("confirmPassword", "Passwords do not match"))
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), in.Password); err != nil {
		writeLoginError(w, err, "Failed to reset password")
		return
	}
	h.Nav.Navigate(session.LoginRoute)
	writeValue(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// notifications drains the toast feed.
func (h *Handlers) notifications(w http.ResponseWriter, r *http.Request) {
	items := h.Toasts.Drain()
	if items == nil {
		items = []ui.Toast{}
	}
	writeValue(w, http.StatusOK, items)
}

func (h *Handlers) route(w http.ResponseWriter, r *http.Request) {
	writeValue(w, http.StatusOK, map[string]string{"route": h.Nav.Current()})
}
