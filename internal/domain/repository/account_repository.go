// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shophere/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when no account
// matches the given id or email.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete
// implementation. Every operation is atomic with respect to a single record;
// email uniqueness is enforced by the store itself.
type AccountRepository interface {
	// Create persists a new account and assigns its ID and timestamps.
	// Returns domainerrors.ErrDuplicateEmail if the email is already on file.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Update replaces the stored record with the caller's in-memory mutation.
	// Returns ErrAccountNotFound if the id no longer exists.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the record entirely. Returns ErrAccountNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail reports whether any account holds the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
