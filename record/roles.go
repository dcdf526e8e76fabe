package record

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the privilege level of a record. Ordered by privilege, highest
// first. The zero value is invalid so that missing roles are detectable.
type Role uint8

// Roles, highest privilege first.
const (
	RoleSuperAdmin Role = iota + 1
	RoleAdmin
	RoleModerator
	RoleEditor
	RoleAuthor
	RoleContributor
	RoleUser
)

// ErrInvalidRole is returned when parsing an unknown role name or number.
var ErrInvalidRole = errors.New("invalid role")

var roleNames = map[Role]string{
	RoleSuperAdmin:  "SuperAdmin",
	RoleAdmin:       "Admin",
	RoleModerator:   "Moderator",
	RoleEditor:      "Editor",
	RoleAuthor:      "Author",
	RoleContributor: "Contributor",
	RoleUser:        "User",
}

// AllRoles lists every valid role, highest privilege first.
func AllRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleAdmin,
		RoleModerator,
		RoleEditor,
		RoleAuthor,
		RoleContributor,
		RoleUser,
	}
}

// IsValid reports whether the role is a member of the role set.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	name, ok := roleNames[r]
	if !ok {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return name
}

// ParseRole parses a role from its name, case-insensitively.
func ParseRole(name string) (Role, error) {
	for role, roleName := range roleNames {
		if strings.EqualFold(name, roleName) {
			return role, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, name)
}
