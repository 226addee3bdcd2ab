// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
// Exactly one role is assigned per account and it is immutable through the
// registration flows; only an admin promotion can change it afterwards.
type Role string

const (
	// RoleUser indicates a regular customer account.
	RoleUser Role = "USER"
	// RoleProvider indicates a service-provider account.
	RoleProvider Role = "PROVIDER"
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// ResolveRequestedRole applies the registration allow-list: only an explicit
// ADMIN request yields ADMIN, every other value (PROVIDER included, unknown,
// or absent) yields USER. PROVIDER accounts are provisioned afterwards through
// admin promotion.
func ResolveRequestedRole(requested string) Role {
	if Role(requested) == RoleAdmin {
		return RoleAdmin
	}

	return RoleUser
}

// Roles is a set of roles permitted to perform an operation.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
// This is the access decision primitive: access is granted iff the
// authenticated role is a member of the operation's required set.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
