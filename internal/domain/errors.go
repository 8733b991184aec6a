package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrLoginRequired  = errors.New("login required")
	ErrSessionExpired = errors.New("session expired")
	ErrDetached       = errors.New("store detached")
)

type fieldMsg struct{ field, msg string }

// ValidationError is raised before any network call. The first message is
// the one shown to the user.
type ValidationError struct {
	fields []fieldMsg
}

func NewValidationError() *ValidationError { return &ValidationError{} }

// Invalid is a shorthand for a single-field validation error.
func Invalid(field, msg string) *ValidationError {
	v := NewValidationError()
	v.Add(field, msg)
	return v
}

func (v *ValidationError) Add(field, msg string) { v.fields = append(v.fields, fieldMsg{field, msg}) }

func (v *ValidationError) Empty() bool { return len(v.fields) == 0 }

// Err returns nil when nothing was added.
func (v *ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Message() string {
	if v.Empty() {
		return ""
	}
	return v.fields[0].msg
}

func (v *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(v.fields))
	for _, f := range v.fields {
		out[f.field] = append(out[f.field], f.msg)
	}
	return out
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.fields))
	for _, f := range v.fields {
		parts = append(parts, f.field+": "+f.msg)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// NotFoundError is ErrNotFound with the text the page shows for it.
type NotFoundError struct{ msg string }

func NotFound(msg string) *NotFoundError { return &NotFoundError{msg: msg} }

func (e *NotFoundError) Error() string       { return "not found: " + e.msg }
func (e *NotFoundError) Unwrap() error       { return ErrNotFound }
func (e *NotFoundError) UserMessage() string { return e.msg }
func (e *NotFoundError) Announced() bool     { return false }

// Notice is implemented by errors that carry text meant for the user.
// Announced reports whether that text has already been shown.
type Notice interface {
	error
	UserMessage() string
	Announced() bool
}

// UserMessage picks the text to show for err, or fallback.
func UserMessage(err error, fallback string) string {
	var n Notice
	if errors.As(err, &n) && n.UserMessage() != "" {
		return n.UserMessage()
	}
	if ve := IsValidationError(err); ve != nil {
		return ve.Message()
	}
	return fallback
}

// Announced is true when the user has already been told about err, either
// by a toast or by being sent to the login screen.
func Announced(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	var n Notice
	return errors.As(err, &n) && n.Announced()
}
