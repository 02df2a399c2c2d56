package domain

import "time"

// Role is the access level gating administrative endpoints.
type Role string

const (
	RoleCitizen       Role = "CITIZEN"
	RoleMinistryStaff Role = "MINISTRY_STAFF"
	RoleAdmin         Role = "ADMIN"
	RoleSuperAdmin    Role = "SUPER_ADMIN"
)

var roles = map[Role]struct{}{
	RoleCitizen:       {},
	RoleMinistryStaff: {},
	RoleAdmin:         {},
	RoleSuperAdmin:    {},
}

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	_, ok := roles[role]
	return role, ok
}

// IsAdministrative reports whether the role may use the admin surface.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanGrant reports whether a caller with role r may assign target to
// another account. Only SUPER_ADMIN hands out ADMIN or SUPER_ADMIN.
func (r Role) CanGrant(target Role) bool {
	if target.IsAdministrative() {
		return r == RoleSuperAdmin
	}
	return r.IsAdministrative()
}

// User is an account in the portal: citizens, ministry staff, and
// administrators share one table distinguished by role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	IsActive     bool
	IsPremium    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
