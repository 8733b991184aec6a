package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with the device id.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env, device string) zerolog.Logger {
	var l zerolog.Logger
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	ctx := l.With().Timestamp().Str("app", "frontdesk")
	if device != "" {
		ctx = ctx.Str("device", device)
	}
	return ctx.Logger()
}
