package api

import (
	"context"
	"net/http"
	"net/url"

	"luxe_haven/internal/domain"
)

var (
	_ domain.ServiceAPI = (*Client)(nil)
	_ domain.RequestAPI = (*Client)(nil)
)

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/services", path: "/services"})
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.Service](body, "services")
}

func (c *Client) CreateService(ctx context.Context, in domain.CreateServiceInput) (domain.Service, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/services", path: "/services", body: in})
	if err != nil {
		return domain.Service{}, err
	}
	return unwrapOne[domain.Service](body, "service")
}

func (c *Client) UpdateService(ctx context.Context, id string, in domain.UpdateServiceInput) (domain.Service, error) {
	body, err := c.do(ctx, request{method: http.MethodPatch, route: "/services/{id}", path: "/services/" + url.PathEscape(id), body: in})
	if err != nil {
		return domain.Service{}, err
	}
	return unwrapOne[domain.Service](body, "service")
}

func (c *Client) MyServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, route: "/service-requests/my-requests", path: "/service-requests/my-requests"})
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.ServiceRequest](body, "requests")
}
