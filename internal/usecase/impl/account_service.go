// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"shophere/internal/domain/entity"
	domainerrors "shophere/internal/domain/errors"
	"shophere/internal/domain/repository"
	"shophere/internal/domain/service"
	"shophere/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface. It owns all the
// business invariants of the account lifecycle; atomicity per record is
// delegated to the repository's unique-constraint-backed operations.
type accountService struct {
	accounts repository.AccountRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	accounts repository.AccountRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register orchestrates the complete account registration process.
// The plaintext password never reaches the store; uniqueness of the email is
// enforced by the repository and propagated unchanged as ErrDuplicateEmail.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting account registration", "email", input.Email)

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Name:           input.Name,
		Email:          input.Email,
		PasswordDigest: digest,
		Roles:          entity.Roles{entity.RoleUser},
	}

	if err := srv.accounts.Create(ctx, newAccount); err != nil {
		srv.logger.Warn("Failed to create account", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.logger.Debug("Account registered successfully", "accountID", newAccount.ID)

	return &usecase.RegisterOutput{AccountID: newAccount.ID}, nil
}

// SignIn verifies the credentials and issues a bearer token.
// Unknown email and wrong password collapse into the same outward
// ErrInvalidCredentials signal to prevent account enumeration.
func (srv *accountService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	srv.logger.Debug("Starting sign-in", "email", input.Email)

	account, err := srv.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("sign-in failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	ok, err := srv.hasher.Check(input.Password, account.PasswordDigest)
	if err != nil {
		// Malformed digest means the stored credential is corrupt; surface it
		// distinctly so it can be alerted on instead of retried.
		srv.logger.Error("Stored digest could not be verified", "accountID", account.ID, "error", err)

		return nil, errors.Wrap(err, "failed to verify credentials")
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("sign-in failed")
	}

	token, err := srv.tokens.Issue(account.Email, account.PrimaryRole())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.logger.Debug("Signed in successfully", "accountID", account.ID)

	return &usecase.SignInOutput{
		AccessToken: token,
		AccountID:   account.ID,
	}, nil
}

// ChangePassword replaces the stored digest after verifying the current password.
func (srv *accountService) ChangePassword(ctx context.Context, email string, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Starting password change", "email", email)

	account, err := srv.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := srv.hasher.Check(input.OldPassword, account.PasswordDigest)
	if err != nil {
		srv.logger.Error("Stored digest could not be verified", "accountID", account.ID, "error", err)

		return errors.Wrap(err, "failed to verify old password")
	}
	if !ok {
		// User-correctable outcome, not a system fault.
		return domainerrors.ErrOldPasswordMismatch.WrapMessage("password change rejected")
	}

	digest, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.logger.Error("Failed to hash new password", "accountID", account.ID, "error", err)

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	account.PasswordDigest = digest
	if err := srv.accounts.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to persist new password")
	}

	srv.logger.Debug("Password changed successfully", "accountID", account.ID)

	return nil
}

// UpdateProfile applies targeted field mutations and persists the record.
// Identity and credential fields are not mutable here.
func (srv *accountService) UpdateProfile(ctx context.Context, email string, input *usecase.UpdateProfileInput) error {
	srv.logger.Info("Updating profile", "email", email)

	account, err := srv.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Picture != nil {
		account.Picture = *input.Picture
	}

	if err := srv.accounts.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}

// PromoteToOwner adds the elevated role tag to the account's role set.
// Promotion only adds; re-promoting an owner leaves the set unchanged.
func (srv *accountService) PromoteToOwner(ctx context.Context, email string) (uuid.UUID, error) {
	srv.logger.Info("Promoting account to owner", "email", email)

	account, err := srv.findByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}

	account.GrantRole(entity.RoleOwner)

	if err := srv.accounts.Update(ctx, account); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to persist promotion")
	}

	srv.logger.Debug("Account promoted", "accountID", account.ID)

	return account.ID, nil
}

// Delete removes the account record entirely.
func (srv *accountService) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	srv.logger.Info("Deleting account", "accountID", id)

	if err := srv.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return uuid.Nil, domainerrors.ErrNotFound.WrapMessage("account not found")
		}

		return uuid.Nil, errors.Wrap(err, "failed to delete account")
	}

	return id, nil
}

// LookupByEmail returns the public projection of an account; the password
// digest never leaves the usecase layer.
func (srv *accountService) LookupByEmail(ctx context.Context, email string) (*usecase.AccountView, error) {
	account, err := srv.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return usecase.NewAccountView(account), nil
}

// EmailExists is a pass-through existence check for pre-registration validation.
func (srv *accountService) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := srv.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}

	return exists, nil
}

// findByEmail maps the repository's not-found sentinel onto the domain taxonomy.
func (srv *accountService) findByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("account not found")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return account, nil
}
