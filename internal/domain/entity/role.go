// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin manages users and stores.
	RoleAdmin Role = "ADMIN"
	// RoleUser browses stores and submits ratings.
	RoleUser Role = "USER"
	// RoleStoreOwner views the ratings of owned stores.
	RoleStoreOwner Role = "STORE_OWNER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// AllRoles lists every role in a stable order.
func AllRoles() Roles {
	return Roles{RoleAdmin, RoleUser, RoleStoreOwner}
}
