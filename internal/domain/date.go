package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. The API sends either "2006-01-02" or a full
// RFC 3339 timestamp; both decode. It encodes as "2006-01-02".
type Date struct{ time.Time }

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" or RFC 3339. Empty input yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t.UTC()}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Full renders e.g. "Mar 1, 2025".
func (d Date) Full() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}

// Long renders e.g. "Saturday, March 1, 2025".
func (d Date) Long() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Monday, January 2, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// Nights is the number of nights between check-in and check-out: the
// ceiling of the day difference. Missing dates, or a check-out on or
// before check-in, give 0.
func Nights(checkIn, checkOut Date) int {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn.Time) {
		return 0
	}
	days := checkOut.Sub(checkIn.Time).Hours() / 24
	return int(math.Ceil(days))
}
