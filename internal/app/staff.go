package app

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

type StaffStore struct {
	*collection[domain.StaffMember]
	api domain.StaffAPI
}

func NewStaffStore(api domain.StaffAPI, n domain.Notifier, l zerolog.Logger) *StaffStore {
	return &StaffStore{
		collection: newCollection("staff", func(m domain.StaffMember) string { return m.ID }, n, l),
		api:        api,
	}
}

func (s *StaffStore) Fetch(ctx context.Context) error {
	return s.fetch(ctx, s.api.ListStaff, "Failed to fetch staff")
}

// Search filters the loaded list on full name and email.
func (s *StaffStore) Search(q string) []domain.StaffMember {
	out := []domain.StaffMember{}
	for _, m := range s.Items() {
		if m.MatchesQuery(q) {
			out = append(out, m)
		}
	}
	return out
}

func (s *StaffStore) Create(ctx context.Context, in domain.CreateStaffInput) (domain.StaffMember, error) {
	v := domain.NewValidationError()
	validateNames(v, in.FirstName, in.LastName)
	validateEmail(v, in.Email)
	if in.Password == "" {
		v.Add("password", "Password is required")
	}
	if err := v.Err(); err != nil {
		s.fail(err, "Failed to create staff member")
		return domain.StaffMember{}, err
	}
	if in.Role == "" {
		in.Role = domain.RoleStaff
	}
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.StaffMember, error) { return s.api.CreateStaff(ctx, in) },
		s.appendItem, "Staff member created successfully", "Failed to create staff member")
}

func (s *StaffStore) Update(ctx context.Context, id string, in domain.UpdateStaffInput) (domain.StaffMember, error) {
	v := domain.NewValidationError()
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		v.Add("firstName", "First name is required")
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
		v.Add("lastName", "Last name is required")
	}
	if in.Email != nil {
		validateEmail(v, *in.Email)
	}
	if err := v.Err(); err != nil {
		s.fail(err, "Failed to update staff member")
		return domain.StaffMember{}, err
	}
	return s.replace(ctx, id, func(ctx context.Context) (domain.StaffMember, error) {
		return s.api.UpdateStaff(ctx, id, in)
	}, "Staff member updated successfully", "Failed to update staff member")
}

func (s *StaffStore) Disable(ctx context.Context, id string) (domain.StaffMember, error) {
	return s.replace(ctx, id, func(ctx context.Context) (domain.StaffMember, error) {
		m, err := s.api.DisableStaff(ctx, id)
		if err == nil && m.Active == nil {
			inactive := false
			m.Active = &inactive
		}
		return m, err
	}, "Staff member disabled successfully", "Failed to disable staff member")
}

func (s *StaffStore) ChangeRole(ctx context.Context, id string, role domain.StaffRole) (domain.StaffMember, error) {
	switch role {
	case domain.RoleStaff, domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		err := domain.Invalid("role", "Invalid role")
		s.fail(err, "Failed to update staff role")
		return domain.StaffMember{}, err
	}
	return s.replace(ctx, id, func(ctx context.Context) (domain.StaffMember, error) {
		return s.api.ChangeStaffRole(ctx, id, role)
	}, "Staff role updated successfully", "Failed to update staff role")
}

func (s *StaffStore) replace(ctx context.Context, id string, call func(context.Context) (domain.StaffMember, error), ok, fallback string) (domain.StaffMember, error) {
	return mutation(ctx, s.collection,
		func(ctx context.Context) (domain.StaffMember, error) {
			m, err := call(ctx)
			m.ID = id
			return m, err
		},
		s.replaceItem, ok, fallback)
}

func validateNames(v *domain.ValidationError, first, last string) {
	if strings.TrimSpace(first) == "" {
		v.Add("firstName", "First name is required")
	}
	if strings.TrimSpace(last) == "" {
		v.Add("lastName", "Last name is required")
	}
}

func validateEmail(v *domain.ValidationError, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		v.Add("email", "Email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "Please enter a valid email address")
	}
}
