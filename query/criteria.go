// Package query filters and paginates record collections. Select is a pure
// function over an in-memory snapshot; it never touches a store.
package query

import (
	"strings"

	"github.com/tabwork/gridbase/record"
)

// Pagination defaults, also used by the query-string boundary.
const (
	DefaultPage     = 1
	DefaultPageSize = 5
)

// StatusFilter filters by the active flag. The zero value passes everything.
type StatusFilter uint8

// Status filters.
const (
	StatusAll StatusFilter = iota
	StatusActive
	StatusInactive
)

func (f StatusFilter) String() string {
	switch f {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return "all"
	}
}

// ParseStatus parses a status filter name. Anything unrecognized maps to
// StatusActive, matching the navigation boundary contract.
func ParseStatus(name string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		return StatusAll
	case "inactive":
		return StatusInactive
	default:
		return StatusActive
	}
}

// RoleFilter filters by role. It is a tagged type kept apart from
// record.Role so that the domain enum never needs a wildcard member. The
// zero value passes everything.
type RoleFilter struct {
	role record.Role
}

// AnyRole returns the wildcard role filter.
func AnyRole() RoleFilter {
	return RoleFilter{}
}

// OnlyRole returns a filter matching exactly the given role.
func OnlyRole(role record.Role) RoleFilter {
	return RoleFilter{role: role}
}

// IsAll reports whether the filter is the wildcard.
func (f RoleFilter) IsAll() bool {
	return f.role == 0
}

// Role returns the specific role and whether one is set.
func (f RoleFilter) Role() (record.Role, bool) {
	return f.role, f.role != 0
}

func (f RoleFilter) String() string {
	if f.IsAll() {
		return "all"
	}
	return f.role.String()
}

// ParseRoleFilter parses a role filter. "all", the empty string and unknown
// names map to the wildcard.
func ParseRoleFilter(name string) RoleFilter {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return AnyRole()
	}
	role, err := record.ParseRole(trimmed)
	if err != nil {
		return AnyRole()
	}
	return OnlyRole(role)
}

// Criteria describes one query request. The zero value passes every record
// and selects the first default-sized page.
type Criteria struct {
	Status     StatusFilter
	Role       RoleFilter
	SearchText string

	Page     int
	PageSize int
}

// Default returns the criteria the navigation boundary starts with: active
// records of any role, first page.
func Default() Criteria {
	return Criteria{
		Status:   StatusActive,
		Role:     AnyRole(),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}
