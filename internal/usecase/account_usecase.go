// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"shophere/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// UpdateProfileInput defines the mutable, non-identity, non-credential fields.
// Nil pointers leave the stored value untouched.
type UpdateProfileInput struct {
	Name    *string
	Picture *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's identifier.
type RegisterOutput struct {
	AccountID uuid.UUID
}

// SignInOutput returns the issued credential after a successful sign-in.
type SignInOutput struct {
	AccessToken string
	AccountID   uuid.UUID
}

// AccountView is the read-only public projection of an account.
// It never carries the password digest.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAccountView projects an account entity onto its public view.
func NewAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	return &AccountView{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Roles:     account.Roles.ToStrings(),
		Picture:   account.Picture,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account with the base role and a hashed password.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// SignIn verifies credentials and issues a bearer token bound to the
	// account's primary role.
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)

	// ChangePassword replaces the credential after verifying the current one.
	ChangePassword(ctx context.Context, email string, input *ChangePasswordInput) error

	// UpdateProfile applies targeted mutations to profile fields.
	UpdateProfile(ctx context.Context, email string, input *UpdateProfileInput) error

	// PromoteToOwner adds the elevated role tag; idempotent on the final role set.
	PromoteToOwner(ctx context.Context, email string) (uuid.UUID, error)

	// Delete removes the account record entirely.
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// LookupByEmail returns the public projection of an account.
	LookupByEmail(ctx context.Context, email string) (*AccountView, error)

	// EmailExists reports whether an email is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}
