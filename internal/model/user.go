package model

import "time"

// Auth providers recognised by the gateway.  Provider is an open enum:
// unknown values coming from the database are preserved as-is so that new
// federation providers can be added without a schema change here.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// Roles carried in issued tokens.  RoleService is the elevated role required
// for the raw SQL console and for dispatching maintenance jobs.
const (
	RoleAuthenticated = "authenticated"
	RoleService       = "service_role"
)

// User represents a row of the `auth.users` table.  Password users carry a
// bcrypt hash in EncryptedPassword; federated users have none and can never
// pass the password challenge.
type User struct {
	ID                uint64     // auth.users.id
	Email             string     // auth.users.email (unique, lower-cased)
	EncryptedPassword string     // auth.users.encrypted_password (empty for federated users)
	Provider          string     // auth.users.provider ("email", "google", ...)
	Role              string     // auth.users.role
	CreatedAt         time.Time  // auth.users.created_at
	LastSignIn        *time.Time // auth.users.last_sign_in (null until first login)
}

// PublicUser is the externally visible projection of a User.  The password
// hash never leaves the repository layer.
type PublicUser struct {
	ID         uint64     `json:"id"`
	Email      string     `json:"email"`
	Provider   string     `json:"provider"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSignIn *time.Time `json:"last_sign_in,omitempty"`
}

// Public returns the sanitized projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Provider:   u.Provider,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		LastSignIn: u.LastSignIn,
	}
}
