package domain

// Role is the platform-wide role carried by an authorization context.
type Role string

const (
	// RoleHacker is the least-privileged role and the default when a
	// principal carries no explicit role claim.
	RoleHacker Role = "hacker"
	// RoleOrgAdmin marks a user who administers at least one organization.
	RoleOrgAdmin Role = "org_admin"
	// RolePlatformAdmin marks platform staff with global privileges.
	RolePlatformAdmin Role = "platform_admin"
)

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHacker, RoleOrgAdmin, RolePlatformAdmin:
		return true
	}
	return false
}

// Principal is a verified identity as issued by the identity provider:
// the provider's user id plus the raw claims of the credential. It carries
// no platform role or verification state — that enrichment happens in the
// context builder. A Principal lives only for the duration of one request.
type Principal struct {
	UserID string
	Claims map[string]any
}

// ApiContext is the per-request authorization context derived from a
// Principal plus a profile lookup. It is built exactly once per request,
// passed down the call chain, and never persisted. An ApiContext is only
// ever constructed for a principal that passed credential verification.
type ApiContext struct {
	UserID   string `json:"user_id"`
	OrgID    string `json:"org_id,omitempty"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}
