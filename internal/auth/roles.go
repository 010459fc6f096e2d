package auth

// Role is an ordinal user role. Comparisons are by rank, never by string
// equality, except for exact admin gating on admin-only routes.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleConsultant Role = "consultant"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

// roleRank defines the strict total order over roles.
var roleRank = map[Role]int{
	RoleViewer:     0,
	RoleConsultant: 1,
	RoleManager:    2,
	RoleAdmin:      3,
}

// ParseRole returns the role for a claim string. Unknown roles map to the
// least-privileged rank so a corrupted claim can never widen access.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return RoleViewer
	}
	return r
}

// Valid reports whether the role is a known role
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role is at least as privileged as required
func (r Role) AtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

// IsAdmin reports whether the role is exactly admin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// HasPermission checks a permission list for a specific permission. A "*"
// entry grants everything.
func HasPermission(permissions []string, required string) bool {
	for _, perm := range permissions {
		if perm == required || perm == "*" {
			return true
		}
	}
	return false
}
