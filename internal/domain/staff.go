package domain

import "strings"

type StaffRole string

const (
	RoleStaff      StaffRole = "staff"
	RoleAdmin      StaffRole = "admin"
	RoleSuperAdmin StaffRole = "super-admin"
	RoleGuest      StaffRole = "guest"
)

func (r StaffRole) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// Label is the role column text: super-admins show as Admin.
func (r StaffRole) Label() string {
	if r.IsAdmin() {
		return "Admin"
	}
	return "Staff"
}

type StaffMember struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      StaffRole `json:"role"`
	Active    *bool     `json:"active,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

func (s StaffMember) FullName() string { return joinName(s.FirstName, s.LastName) }

// IsActive treats a missing flag as active.
func (s StaffMember) IsActive() bool { return s.Active == nil || *s.Active }

// MatchesQuery searches the full name and email, case-insensitively.
func (s StaffMember) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.FullName()), q) ||
		strings.Contains(strings.ToLower(s.Email), q)
}

type CreateStaffInput struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      StaffRole `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

type UpdateStaffInput struct {
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Role      *StaffRole `json:"role,omitempty"`
}

// GuestRegistration is the identity block of a staff-registered guest.
type GuestRegistration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	NIN       string `json:"NIN"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

func (g GuestRegistration) FullName() string { return joinName(g.FirstName, g.LastName) }

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
