package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

const maxRoomImages = 5

type RoomStore struct {
	*collection[domain.Room]
	api domain.RoomAPI
}

func NewRoomStore(api domain.RoomAPI, n domain.Notifier, l zerolog.Logger) *RoomStore {
	return &RoomStore{
		collection: newCollection("rooms", func(r domain.Room) string { return r.ID }, n, l),
		api:        api,
	}
}

func (s *RoomStore) Fetch(ctx context.Context) error {
	return s.fetch(ctx, s.api.ListRooms, "Failed to fetch rooms")
}

// Get loads one room for a detail screen. The list is not touched.
func (s *RoomStore) Get(ctx context.Context, id string) (domain.Room, error) {
	r, err := s.api.GetRoom(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch room")
		return domain.Room{}, err
	}
	return r, nil
}

func (s *RoomStore) Create(ctx context.Context, f RoomForm) (domain.Room, error) {
	in, err := f.Validate()
	if err != nil {
		s.fail(err, "Failed to create room")
		return domain.Room{}, err
	}
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Room, error) { return s.api.CreateRoom(ctx, in) },
		s.appendItem, "Room created successfully", "Failed to create room")
}

func (s *RoomStore) Update(ctx context.Context, id string, in domain.UpdateRoomInput) (domain.Room, error) {
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Room, error) {
			r, err := s.api.UpdateRoom(ctx, id, in)
			r.ID = id
			return r, err
		},
		s.replaceItem, "Room updated successfully", "Failed to update room")
}

func (s *RoomStore) Delete(ctx context.Context, id string) error {
	_, err := mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Room, error) {
			return domain.Room{ID: id}, s.api.DeleteRoom(ctx, id)
		},
		func(items []domain.Room, r domain.Room) []domain.Room { return s.removeID(items, r.ID) },
		"Room deleted successfully", "Failed to delete room")
	return err
}

func (s *RoomStore) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (domain.Room, error) {
	if !status.Valid() {
		err := domain.Invalid("status", fmt.Sprintf("Unknown room status %q", status))
		s.fail(err, "Failed to update room status")
		return domain.Room{}, err
	}
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Room, error) {
			r, err := s.api.UpdateRoomStatus(ctx, id, status)
			r.ID = id
			return r, err
		},
		s.replaceItem, "Room status updated successfully", "Failed to update room status")
}

// SetDeskStatus applies a room-board status change.
func (s *RoomStore) SetDeskStatus(ctx context.Context, id string, ds domain.DeskStatus) (domain.Room, error) {
	return s.UpdateStatus(ctx, id, domain.RoomStatusFromDesk(ds))
}

// RoomForm is the admin "add room" form. Price is in major units as typed.
type RoomForm struct {
	Number    int                 `json:"number"`
	Alphabet  string              `json:"alphabet"`
	Category  domain.RoomCategory `json:"category"`
	Price     float64             `json:"price"`
	MaxGuest  int                 `json:"maxGuest"`
	BedType   string              `json:"bedType"`
	OceanView bool                `json:"oceanView"`
	Images    []string            `json:"images"`
}

func (f RoomForm) Validate() (domain.CreateRoomInput, error) {
	v := domain.NewValidationError()
	if f.Number <= 0 {
		v.Add("number", "Room number is required")
	}
	alpha := strings.ToUpper(strings.TrimSpace(f.Alphabet))
	if alpha == "" {
		v.Add("alphabet", "Room letter is required")
	}
	if f.Category == "" {
		v.Add("category", "Category is required")
	}
	if f.Price <= 0 {
		v.Add("price", "Price must be greater than 0")
	}
	if f.MaxGuest < 1 {
		v.Add("maxGuest", "Max guests must be at least 1")
	}
	var images []string
	for _, raw := range f.Images {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if u, err := url.ParseRequestURI(raw); err != nil || u.Host == "" {
			v.Add("images", "Invalid image URL: "+raw)
			continue
		}
		images = append(images, raw)
	}
	if len(images) > maxRoomImages {
		v.Add("images", fmt.Sprintf("You can add up to %d images", maxRoomImages))
	}
	if err := v.Err(); err != nil {
		return domain.CreateRoomInput{}, err
	}
	return domain.CreateRoomInput{
		Number:    f.Number,
		Alphabet:  alpha,
		Category:  f.Category,
		Price:     domain.ToMinorUnits(f.Price),
		MaxGuest:  f.MaxGuest,
		BedType:   f.BedType,
		OceanView: f.OceanView,
		Images:    images,
	}, nil
}
