package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

type ServiceStore struct {
	*collection[domain.Service]
	api domain.ServiceAPI
}

func NewServiceStore(api domain.ServiceAPI, n domain.Notifier, l zerolog.Logger) *ServiceStore {
	return &ServiceStore{
		collection: newCollection("services", func(s domain.Service) string { return s.ID }, n, l),
		api:        api,
	}
}

func (s *ServiceStore) Fetch(ctx context.Context) error {
	return s.fetch(ctx, s.api.ListServices, "Failed to fetch services")
}

// Create fills the usual defaults: category other, 30 minutes, active.
func (s *ServiceStore) Create(ctx context.Context, in domain.CreateServiceInput) (domain.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		err := domain.Invalid("name", "Service name is required")
		s.fail(err, "Failed to create service")
		return domain.Service{}, err
	}
	if in.Category == "" {
		in.Category = domain.ServiceOther
	}
	if in.EstimatedDuration <= 0 {
		in.EstimatedDuration = domain.DefaultServiceDuration
	}
	if in.Active == nil {
		active := true
		in.Active = &active
	}
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Service, error) { return s.api.CreateService(ctx, in) },
		s.appendItem, "Service created successfully", "Failed to create service")
}

func (s *ServiceStore) Update(ctx context.Context, id string, in domain.UpdateServiceInput) (domain.Service, error) {
	return s.update(ctx, id, in, "Service updated successfully")
}

// ToggleActive flips one service between active and suspended.
func (s *ServiceStore) ToggleActive(ctx context.Context, id string) (domain.Service, error) {
	cur, ok := s.Find(id)
	if !ok {
		s.notify.Error("Service not found")
		return domain.Service{}, domain.ErrNotFound
	}
	next := !cur.Active
	msg := "Service suspended successfully"
	if next {
		msg = "Service activated successfully"
	}
	return s.update(ctx, id, domain.UpdateServiceInput{Active: &next}, msg)
}

func (s *ServiceStore) update(ctx context.Context, id string, in domain.UpdateServiceInput, ok string) (domain.Service, error) {
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.Service, error) {
			sv, err := s.api.UpdateService(ctx, id, in)
			sv.ID = id
			return sv, err
		},
		s.replaceItem, ok, "Failed to update service")
}
