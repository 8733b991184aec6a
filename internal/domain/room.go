package domain

import (
	"fmt"
	"strings"
)

type RoomCategory string

const (
	CategoryStandard RoomCategory = "standard"
	CategoryDeluxe   RoomCategory = "deluxe"
	CategorySuite    RoomCategory = "suite"
)

// RoomStatus is the booking status as the API reports it.
type RoomStatus string

const (
	RoomAvailable     RoomStatus = "available"
	RoomOccupied      RoomStatus = "occupied"
	RoomMaintenance   RoomStatus = "maintenance"
	RoomUnserviceable RoomStatus = "unserviceable"
	RoomDisabled      RoomStatus = "disabled"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomUnserviceable, RoomDisabled:
		return true
	}
	return false
}

// DeskStatus is the coarser status shown on the front-desk room board.
type DeskStatus string

const (
	DeskOccupied    DeskStatus = "occupied"
	DeskAvailable   DeskStatus = "available"
	DeskCleaning    DeskStatus = "cleaning"
	DeskMaintenance DeskStatus = "maintenance"
)

type Room struct {
	ID        string       `json:"_id"`
	Number    int          `json:"number"`
	Alphabet  string       `json:"alphabet"`
	Category  RoomCategory `json:"category"`
	Price     int64        `json:"price"` // minor units
	MaxGuest  int          `json:"maxGuest"`
	BedType   string       `json:"bedType"`
	OceanView bool         `json:"oceanView"`
	IsBooked  bool         `json:"isBooked"`
	Status    RoomStatus   `json:"status"`
	Images    []string     `json:"images"`
	CreatedAt string       `json:"createdAt,omitempty"`
	UpdatedAt string       `json:"updatedAt,omitempty"`
}

type CreateRoomInput struct {
	Number    int          `json:"number"`
	Alphabet  string       `json:"alphabet"`
	Category  RoomCategory `json:"category"`
	Price     int64        `json:"price"`
	MaxGuest  int          `json:"maxGuest"`
	BedType   string       `json:"bedType"`
	OceanView bool         `json:"oceanView"`
	Images    []string     `json:"images,omitempty"`
}

// UpdateRoomInput is a partial update; nil fields are not sent.
type UpdateRoomInput struct {
	Number    *int          `json:"number,omitempty"`
	Alphabet  *string       `json:"alphabet,omitempty"`
	Category  *RoomCategory `json:"category,omitempty"`
	Price     *int64        `json:"price,omitempty"`
	MaxGuest  *int          `json:"maxGuest,omitempty"`
	BedType   *string       `json:"bedType,omitempty"`
	OceanView *bool         `json:"oceanView,omitempty"`
	Images    []string      `json:"images,omitempty"`
	Status    *RoomStatus   `json:"status,omitempty"`
}

var categoryNames = map[RoomCategory]string{
	CategoryStandard: "Standard Room",
	CategoryDeluxe:   "Deluxe Room",
	CategorySuite:    "Suite",
}

// CategoryName returns the display label, or the raw category when unknown.
func CategoryName(c RoomCategory) string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// Code is the letter prefix followed by the number, e.g. "A101".
func (r Room) Code() string { return fmt.Sprintf("%s%d", r.Alphabet, r.Number) }

// DisplayName is e.g. "Deluxe Room B204".
func (r Room) DisplayName() string { return CategoryName(r.Category) + " " + r.Code() }

func (r Room) DisplayPrice() string { return FormatPrice(r.Price) }

func (r Room) Description() string {
	plural := ""
	if r.MaxGuest > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Comfortable %s room with %s bed, perfect for %d guest%s.", r.Category, r.BedType, r.MaxGuest, plural)
}

// DeskStatus collapses the API status; a booked room is always occupied.
func (r Room) DeskStatus() DeskStatus {
	if r.IsBooked || r.Status == RoomOccupied {
		return DeskOccupied
	}
	switch r.Status {
	case RoomMaintenance, RoomUnserviceable, RoomDisabled:
		return DeskMaintenance
	default:
		return DeskAvailable
	}
}

// RoomStatusFromDesk maps a board status back to the API status.
// Cleaning is transient and is stored as available.
func RoomStatusFromDesk(s DeskStatus) RoomStatus {
	switch s {
	case DeskOccupied:
		return RoomOccupied
	case DeskMaintenance:
		return RoomMaintenance
	default:
		return RoomAvailable
	}
}

// MatchesQuery reports whether q (case-insensitive) appears in the room
// number, letter prefix, category, code or display name.
func (r Room) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(fmt.Sprint(r.Number), q) ||
		strings.Contains(strings.ToLower(r.Alphabet), q) ||
		strings.Contains(strings.ToLower(string(r.Category)), q) ||
		strings.Contains(strings.ToLower(r.Code()), q) ||
		strings.Contains(strings.ToLower(r.DisplayName()), q)
}
