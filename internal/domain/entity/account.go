// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the sole entity of the service: a person's stored identity,
// credential and role record.
//
// PasswordDigest always holds the salted one-way hash produced by the
// PasswordHasher, never the plaintext secret. ID is assigned by the store at
// creation and never mutated afterward.
type Account struct {
	ID             uuid.UUID // Stable identifier, assigned once at creation.
	Name           string    // Display name, mutable, no uniqueness constraint.
	Email          string    // Unique sign-in identity.
	PasswordDigest string    // Salted hash of the password, never the plaintext.
	Roles          Roles     // Role tag set, contains at least RoleUser after registration.
	Picture        string    // Optional opaque reference, no behavior attached.
	CreatedAt      time.Time // Set by the store on create.
	UpdatedAt      time.Time // Set by the store on every persisted mutation.
}

// GrantRole adds a role tag to the account's role set. Re-granting an
// already-present role leaves the set unchanged.
func (a *Account) GrantRole(role Role) {
	if a.Roles.Contains(role) {
		return
	}
	a.Roles = append(a.Roles, role)
}

// PrimaryRole returns the role the account acts under: the elevated owner
// role when present, the base role otherwise.
func (a *Account) PrimaryRole() Role {
	if a.Roles.Contains(RoleOwner) {
		return RoleOwner
	}

	return RoleUser
}
