package domain

import "time"

// User is an identity account held by the local identity provider. The
// password hash never leaves the identity layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the platform-side record backing an authorization context:
// the role and verification flag looked up per request by the context
// builder. A principal without a Profile is an orphaned session.
type Profile struct {
	UserID   string `json:"user_id"`
	OrgID    string `json:"org_id,omitempty"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

// Organization is a program-owning tenant on the platform.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	AdminIDs  []string  `json:"admin_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether userID administers this organization.
func (o *Organization) IsAdmin(userID string) bool {
	for _, id := range o.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
