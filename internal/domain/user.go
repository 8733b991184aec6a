package domain

// User is the signed-in profile cached next to the tokens.
type User struct {
	ID        string    `json:"_id,omitempty"`
	AltID     string    `json:"id,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      StaffRole `json:"role,omitempty"`
}

func (u User) Identifier() string {
	if u.ID != "" {
		return u.ID
	}
	return u.AltID
}

func (u User) FullName() string { return joinName(u.FirstName, u.LastName) }

// EffectiveRole defaults to guest when the profile carries no role.
func (u User) EffectiveRole() StaffRole {
	if u.Role == "" {
		return RoleGuest
	}
	return u.Role
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	NIN       string `json:"NIN,omitempty"`
	Password  string `json:"password"`
}

// AuthResult is what login and signup hand back.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         User
}
