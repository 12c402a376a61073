package service

import (
	"shophere/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by issued tokens.
type Claims struct {
	Role entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing signed, time-bounded
// credentials. The account core treats the token as opaque beyond the
// subject and role binding; Validate exists for the HTTP middleware
// collaborator that guards protected endpoints.
type TokenService interface {
	// Issue creates a signed token binding the subject identity to a role
	// claim, stamped with issuance time and an expiry horizon.
	Issue(subject string, role entity.Role) (string, error)

	// Validate checks a token string and returns its claims when the
	// signature and expiry hold.
	Validate(tokenString string) (*Claims, error)
}
