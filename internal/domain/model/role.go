package model

// Role is the authorization tag carried by an account and its tokens.
// The set is closed; comparisons are exact-string with no hierarchy.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles returns every valid role.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}
