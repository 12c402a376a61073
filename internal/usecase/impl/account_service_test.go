package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"shophere/internal/domain/entity"
	domainerrors "shophere/internal/domain/errors"
	"shophere/internal/domain/repository"
	mockRepo "shophere/internal/mocks/repository"
	mockService "shophere/internal/mocks/service"
	"shophere/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	accounts *mockRepo.MockAccountRepository
	hasher   *mockService.MockPasswordHasher
	tokens   *mockService.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accounts := mockRepo.NewMockAccountRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockService.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAccountService(accounts, hasher, tokens, logger)

	return accountServiceFixtures{
		service:  service,
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "s3cret",
	}
	assignedID := uuid.New()

	fx.hasher.EXPECT().Hash("s3cret").Return("$digest$", nil)
	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			// The plaintext never reaches the store and the base role is set.
			assert.Equal(t, "$digest$", account.PasswordDigest)
			assert.Equal(t, entity.Roles{entity.RoleUser}, account.Roles)
			account.ID = assignedID
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, assignedID, output.AccountID)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "s3cret",
	}

	fx.hasher.EXPECT().Hash("s3cret").Return("$digest$", nil)
	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrDuplicateEmail.WrapMessage("email already exists"))

	_, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "s3cret",
	}

	fx.hasher.EXPECT().Hash("s3cret").Return("", errors.New("cost out of range"))

	_, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAccountService_SignIn_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:             accountID,
		Email:          "alice@x.com",
		PasswordDigest: "$digest$",
		Roles:          entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.hasher.EXPECT().Check("s3cret", "$digest$").Return(true, nil)
	fx.tokens.EXPECT().Issue("alice@x.com", entity.RoleUser).Return("token-abc", nil)

	output, err := fx.service.SignIn(ctx, &usecase.SignInInput{
		Email:    "alice@x.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", output.AccessToken)
	assert.Equal(t, accountID, output.AccountID)
}

func TestAccountService_SignIn_OwnerRoleWins(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Email:          "boss@x.com",
		PasswordDigest: "$digest$",
		Roles:          entity.Roles{entity.RoleUser, entity.RoleOwner},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "boss@x.com").Return(account, nil)
	fx.hasher.EXPECT().Check("s3cret", "$digest$").Return(true, nil)
	fx.tokens.EXPECT().Issue("boss@x.com", entity.RoleOwner).Return("token-owner", nil)

	output, err := fx.service.SignIn(ctx, &usecase.SignInInput{
		Email:    "boss@x.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-owner", output.AccessToken)
}

func TestAccountService_SignIn_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Email:          "alice@x.com",
		PasswordDigest: "$digest$",
		Roles:          entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.hasher.EXPECT().Check("wrong", "$digest$").Return(false, nil)

	_, err := fx.service.SignIn(ctx, &usecase.SignInInput{
		Email:    "alice@x.com",
		Password: "wrong",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_SignIn_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accounts.EXPECT().FindByEmail(ctx, "ghost@x.com").Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.SignIn(ctx, &usecase.SignInInput{
		Email:    "ghost@x.com",
		Password: "whatever",
	})

	// Unknown email and wrong password are indistinguishable outcomes.
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_SignIn_MalformedDigest(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Email:          "alice@x.com",
		PasswordDigest: "not-a-digest",
		Roles:          entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.hasher.EXPECT().
		Check("s3cret", "not-a-digest").
		Return(false, domainerrors.ErrMalformedDigest.WrapMessage("stored digest is not a valid hash"))

	_, err := fx.service.SignIn(ctx, &usecase.SignInInput{
		Email:    "alice@x.com",
		Password: "s3cret",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedDigest))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Email:          "alice@x.com",
		PasswordDigest: "$old$",
		Roles:          entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.hasher.EXPECT().Check("s3cret", "$old$").Return(true, nil)
	fx.hasher.EXPECT().Hash("n3wpass").Return("$new$", nil)
	fx.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, "$new$", updated.PasswordDigest)
		}).
		Return(nil)

	err := fx.service.ChangePassword(ctx, "alice@x.com", &usecase.ChangePasswordInput{
		OldPassword: "s3cret",
		NewPassword: "n3wpass",
	})

	require.NoError(t, err)
}

func TestAccountService_ChangePassword_OldPasswordMismatch(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Email:          "alice@x.com",
		PasswordDigest: "$old$",
		Roles:          entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.hasher.EXPECT().Check("wrong", "$old$").Return(false, nil)

	err := fx.service.ChangePassword(ctx, "alice@x.com", &usecase.ChangePasswordInput{
		OldPassword: "wrong",
		NewPassword: "n3wpass",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOldPasswordMismatch))
	// The stored digest stays untouched.
	assert.Equal(t, "$old$", account.PasswordDigest)
}

func TestAccountService_ChangePassword_AccountNotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accounts.EXPECT().FindByEmail(ctx, "ghost@x.com").Return(nil, repository.ErrAccountNotFound)

	err := fx.service.ChangePassword(ctx, "ghost@x.com", &usecase.ChangePasswordInput{
		OldPassword: "a",
		NewPassword: "b",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAccountService_UpdateProfile_PartialUpdate(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:      uuid.New(),
		Email:   "alice@x.com",
		Name:    "Alice",
		Picture: "old.png",
		Roles:   entity.Roles{entity.RoleUser},
	}
	newName := "Alice B."

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.accounts.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	err := fx.service.UpdateProfile(ctx, "alice@x.com", &usecase.UpdateProfileInput{
		Name: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice B.", account.Name)
	// Fields left nil in the input are not cleared.
	assert.Equal(t, "old.png", account.Picture)
}

func TestAccountService_PromoteToOwner_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:    accountID,
		Email: "alice@x.com",
		Roles: entity.Roles{entity.RoleUser},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.True(t, updated.Roles.Contains(entity.RoleOwner))
			assert.True(t, updated.Roles.Contains(entity.RoleUser))
		}).
		Return(nil)

	id, err := fx.service.PromoteToOwner(ctx, "alice@x.com")

	require.NoError(t, err)
	assert.Equal(t, accountID, id)
}

func TestAccountService_PromoteToOwner_Idempotent(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:    uuid.New(),
		Email: "alice@x.com",
		Roles: entity.Roles{entity.RoleUser, entity.RoleOwner},
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)
	fx.accounts.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	_, err := fx.service.PromoteToOwner(ctx, "alice@x.com")

	require.NoError(t, err)
	// Promoting an owner again does not duplicate the role tag.
	assert.Equal(t, entity.Roles{entity.RoleUser, entity.RoleOwner}, account.Roles)
}

func TestAccountService_PromoteToOwner_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accounts.EXPECT().FindByEmail(ctx, "ghost@x.com").Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.PromoteToOwner(ctx, "ghost@x.com")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAccountService_Delete_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accounts.EXPECT().Delete(ctx, accountID).Return(nil)

	id, err := fx.service.Delete(ctx, accountID)

	require.NoError(t, err)
	assert.Equal(t, accountID, id)
}

func TestAccountService_Delete_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accounts.EXPECT().Delete(ctx, accountID).Return(repository.ErrAccountNotFound)

	_, err := fx.service.Delete(ctx, accountID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAccountService_LookupByEmail_ExcludesDigest(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@x.com",
		PasswordDigest: "$digest$",
		Roles:          entity.Roles{entity.RoleUser},
		Picture:        "pic.png",
	}

	fx.accounts.EXPECT().FindByEmail(ctx, "alice@x.com").Return(account, nil)

	view, err := fx.service.LookupByEmail(ctx, "alice@x.com")

	require.NoError(t, err)
	assert.Equal(t, account.ID, view.ID)
	assert.Equal(t, "Alice", view.Name)
	assert.Equal(t, []string{"user"}, view.Roles)
	assert.Equal(t, "pic.png", view.Picture)
}

func TestAccountService_LookupByEmail_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accounts.EXPECT().FindByEmail(ctx, "ghost@x.com").Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.LookupByEmail(ctx, "ghost@x.com")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAccountService_EmailExists(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accounts.EXPECT().ExistsByEmail(ctx, "alice@x.com").Return(true, nil)
	fx.accounts.EXPECT().ExistsByEmail(ctx, "ghost@x.com").Return(false, nil)

	exists, err := fx.service.EmailExists(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fx.service.EmailExists(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
