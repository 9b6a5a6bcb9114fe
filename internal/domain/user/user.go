package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the authenticated identity attached to a request after the
// auth middleware resolves the bearer token against the credential store.
type Principal struct {
	ID    string
	Email string
	Role  string
}

func (u User) Principal() Principal {
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess is the single place where the ownership rule lives: a record is
// visible to its owner and to admins, nobody else.
func CanAccess(p Principal, ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}
