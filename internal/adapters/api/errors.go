package api

import (
	"errors"
	"fmt"
	"net/http"

	"luxe_haven/internal/domain"
)

var (
	ErrNetwork      = errors.New("api: no response")
	ErrEmptyPayload = errors.New("api: empty payload")
)

const networkMessage = "Network error. Please check your connection."

// APIError is a non-2xx answer from the hotel API. Message is what the user
// was shown.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string

	announced bool
}

func (e *APIError) UserMessage() string { return e.Message }
func (e *APIError) Announced() bool     { return e.announced }

func (e *APIError) Error() string {
	return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	return nil
}

// networkError is a request that got no response.
type networkError struct {
	op        string
	cause     error
	announced bool
}

func (e *networkError) Error() string       { return fmt.Sprintf("%v: %s: %v", ErrNetwork, e.op, e.cause) }
func (e *networkError) Unwrap() error       { return ErrNetwork }
func (e *networkError) UserMessage() string { return networkMessage }
func (e *networkError) Announced() bool     { return e.announced }

// Message returns the text to show for err, or fallback when err carries
// none.
func Message(err error, fallback string) string { return domain.UserMessage(err, fallback) }
