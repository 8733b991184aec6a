package api

import (
	"context"
	"net/http"
	"net/url"

	"luxe_haven/internal/domain"
)

var _ domain.StaffAPI = (*Client)(nil)

func (c *Client) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/staff", path: "/staff"})
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.StaffMember](body, "staff")
}

func (c *Client) CreateStaff(ctx context.Context, in domain.CreateStaffInput) (domain.StaffMember, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/staff", path: "/staff", body: in})
	if err != nil {
		return domain.StaffMember{}, err
	}
	return unwrapOne[domain.StaffMember](body, "staff")
}

func (c *Client) UpdateStaff(ctx context.Context, id string, in domain.UpdateStaffInput) (domain.StaffMember, error) {
	body, err := c.do(ctx, request{method: http.MethodPatch, route: "/staff/{id}", path: "/staff/" + url.PathEscape(id), body: in})
	if err != nil {
		return domain.StaffMember{}, err
	}
	return unwrapOne[domain.StaffMember](body, "staff")
}

func (c *Client) DisableStaff(ctx context.Context, id string) (domain.StaffMember, error) {
	body, err := c.do(ctx, request{method: http.MethodPatch, route: "/staff/{id}/disable", path: "/staff/" + url.PathEscape(id) + "/disable"})
	if err != nil {
		return domain.StaffMember{}, err
	}
	return unwrapOne[domain.StaffMember](body, "staff")
}

func (c *Client) ChangeStaffRole(ctx context.Context, id string, role domain.StaffRole) (domain.StaffMember, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/staff/{id}/role",
		path:   "/staff/" + url.PathEscape(id) + "/role",
		body:   map[string]domain.StaffRole{"role": role},
	})
	if err != nil {
		return domain.StaffMember{}, err
	}
	return unwrapOne[domain.StaffMember](body, "staff")
}
