package api

import (
	"context"
	"net/http"
	"net/url"

	"luxe_haven/internal/domain"
)

var _ domain.RoomAPI = (*Client)(nil)

func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/rooms", path: "/rooms"})
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.Room](body, "rooms")
}

func (c *Client) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/rooms/{id}", path: "/rooms/" + url.PathEscape(id)})
	if err != nil {
		return domain.Room{}, err
	}
	return roomOrNotFound(body)
}

// AvailableRooms lists rooms free over [start, end).
func (c *Client) AvailableRooms(ctx context.Context, start, end domain.Date) ([]domain.Room, error) {
	q := url.Values{}
	q.Set("startDate", start.String())
	q.Set("endDate", end.String())
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/rooms/available", path: "/rooms/available", query: q})
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.Room](body, "rooms")
}

func (c *Client) CreateRoom(ctx context.Context, in domain.CreateRoomInput) (domain.Room, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/rooms", path: "/rooms", body: in})
	if err != nil {
		return domain.Room{}, err
	}
	return roomOrNotFound(body)
}

func (c *Client) UpdateRoom(ctx context.Context, id string, in domain.UpdateRoomInput) (domain.Room, error) {
	body, err := c.do(ctx, request{method: http.MethodPatch, route: "/rooms/{id}", path: "/rooms/" + url.PathEscape(id), body: in})
	if err != nil {
		return domain.Room{}, err
	}
	return roomOrNotFound(body)
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, route: "/rooms/{id}", path: "/rooms/" + url.PathEscape(id)})
	return err
}

func (c *Client) UpdateRoomStatus(ctx context.Context, id string, status domain.RoomStatus) (domain.Room, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/rooms/{id}/status",
		path:   "/rooms/" + url.PathEscape(id) + "/status",
		body:   map[string]domain.RoomStatus{"status": status},
	})
	if err != nil {
		return domain.Room{}, err
	}
	return roomOrNotFound(body)
}

func roomOrNotFound(body []byte) (domain.Room, error) {
	r, err := unwrapOne[domain.Room](body, "room")
	if err != nil || r.ID == "" {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}
