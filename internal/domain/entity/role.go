// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can hold in the system.
// It is a closed tag type: promotion only ever adds RoleOwner, there is no
// demotion operation.
type Role string

const (
	// RoleUser is the base role every account receives at registration.
	RoleUser Role = "user"
	// RoleOwner is the elevated role granted by promotion.
	RoleOwner Role = "owner"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner:
		return true
	default:
		return false
	}
}

// Roles is a set of Role tags. Insertion order is irrelevant and duplicates
// collapse on grant.
type Roles []Role

// Contains checks if the roles set contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for serialization.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
