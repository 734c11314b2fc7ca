package domain

// Role enumerates back-office administrator roles.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleCredsureAdmin Role = "CREDSURE_ADMIN"
	RoleSuzukiAdmin   Role = "SUZUKI_ADMIN"
)

// AllRoles lists every valid role value.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleCredsureAdmin, RoleSuzukiAdmin}
}

// ValidRole reports whether the value is a member of the role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleCredsureAdmin, RoleSuzukiAdmin:
		return true
	}
	return false
}
