package app

import (
	"context"

	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

// RequestStore is the signed-in guest's service request history. Read only.
type RequestStore struct {
	*collection[domain.ServiceRequest]
	api domain.RequestAPI
}

func NewRequestStore(api domain.RequestAPI, n domain.Notifier, l zerolog.Logger) *RequestStore {
	return &RequestStore{
		collection: newCollection("service_requests", func(r domain.ServiceRequest) string { return r.ID }, n, l),
		api:        api,
	}
}

func (s *RequestStore) Fetch(ctx context.Context) error {
	return s.fetch(ctx, s.api.MyServiceRequests, "Failed to fetch service requests")
}
