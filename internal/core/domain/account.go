package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Account is a registered credential holder. The password hash never
// leaves the process boundary; JSON marshalling drops it.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the authorization-relevant half of an identity.
// Exactly one profile exists per account and is created with it.
type Profile struct {
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the claim set carried inside a session token: a signed
// projection of Account plus Profile, valid for a bounded window. The
// role reflects the profile at issuance time; later role changes are
// not visible until the token is reissued.
type Identity struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"is_admin"`
}

// IdentityOf builds the token claim set for an account and its profile.
func IdentityOf(account *Account, profile *Profile) Identity {
	return Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      profile.Role,
		IsAdmin:   profile.Role == RoleAdmin,
	}
}
