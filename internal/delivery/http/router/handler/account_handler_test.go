package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shophere/internal/delivery/http/middleware"
	"shophere/internal/delivery/http/validator"
	domainerrors "shophere/internal/domain/errors"
	mockUsecase "shophere/internal/mocks/usecase"
	"shophere/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountHandlerFixtures struct {
	handler *AccountHandler
	uc      *mockUsecase.MockAccountUsecase
	echo    *echo.Echo
}

func createTestAccountHandler(t *testing.T) accountHandlerFixtures {
	uc := mockUsecase.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()

	return accountHandlerFixtures{
		handler: NewAccountHandler(uc, logger),
		uc:      uc,
		echo:    e,
	}
}

func (fx accountHandlerFixtures) newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return fx.echo.NewContext(req, rec), rec
}

func TestAccountHandler_Register_Success(t *testing.T) {
	fx := createTestAccountHandler(t)

	accountID := uuid.New()
	fx.uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(&usecase.RegisterOutput{AccountID: accountID}, nil)

	c, rec := fx.newJSONContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@x.com","password":"s3cretpass"}`)

	err := fx.handler.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), accountID.String())
}

func TestAccountHandler_Register_ValidationFailure(t *testing.T) {
	fx := createTestAccountHandler(t)

	c, _ := fx.newJSONContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"not-an-email","password":"s3cretpass"}`)

	err := fx.handler.Register(c)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAccountHandler_SignIn_Success(t *testing.T) {
	fx := createTestAccountHandler(t)

	accountID := uuid.New()
	fx.uc.EXPECT().
		SignIn(mock.Anything, mock.AnythingOfType("*usecase.SignInInput")).
		Return(&usecase.SignInOutput{AccessToken: "token-abc", AccountID: accountID}, nil)

	c, rec := fx.newJSONContext(http.MethodPost, "/auth/signin",
		`{"email":"alice@x.com","password":"s3cretpass"}`)

	err := fx.handler.SignIn(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-abc")
}

func TestAccountHandler_SignIn_InvalidCredentialsPropagate(t *testing.T) {
	fx := createTestAccountHandler(t)

	fx.uc.EXPECT().
		SignIn(mock.Anything, mock.AnythingOfType("*usecase.SignInInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("sign-in failed"))

	c, _ := fx.newJSONContext(http.MethodPost, "/auth/signin",
		`{"email":"alice@x.com","password":"wrongpass"}`)

	err := fx.handler.SignIn(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountHandler_EmailExists(t *testing.T) {
	fx := createTestAccountHandler(t)

	fx.uc.EXPECT().EmailExists(mock.Anything, "alice@x.com").Return(true, nil)

	c, rec := fx.newJSONContext(http.MethodGet, "/auth/email-exists?email=alice%40x.com", "")

	err := fx.handler.EmailExists(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exists":true`)
}

func TestAccountHandler_EmailExists_MissingParam(t *testing.T) {
	fx := createTestAccountHandler(t)

	c, rec := fx.newJSONContext(http.MethodGet, "/auth/email-exists", "")

	err := fx.handler.EmailExists(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandler_Me_Success(t *testing.T) {
	fx := createTestAccountHandler(t)

	view := &usecase.AccountView{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@x.com",
		Roles: []string{"user"},
	}
	fx.uc.EXPECT().LookupByEmail(mock.Anything, "alice@x.com").Return(view, nil)

	c, rec := fx.newJSONContext(http.MethodGet, "/accounts/me", "")
	c.Set(middleware.ContextKeyAccountEmail, "alice@x.com")

	err := fx.handler.Me(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@x.com")
	// The password digest is not part of the public projection.
	assert.NotContains(t, rec.Body.String(), "digest")
}

func TestAccountHandler_Me_MissingIdentity(t *testing.T) {
	fx := createTestAccountHandler(t)

	c, rec := fx.newJSONContext(http.MethodGet, "/accounts/me", "")

	err := fx.handler.Me(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountHandler(t)

	fx.uc.EXPECT().
		ChangePassword(mock.Anything, "alice@x.com", mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Return(nil)

	c, rec := fx.newJSONContext(http.MethodPut, "/accounts/me/password",
		`{"oldPassword":"s3cretpass","newPassword":"n3wpassword"}`)
	c.Set(middleware.ContextKeyAccountEmail, "alice@x.com")

	err := fx.handler.ChangePassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_Delete_InvalidID(t *testing.T) {
	fx := createTestAccountHandler(t)

	c, rec := fx.newJSONContext(http.MethodDelete, "/accounts/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := fx.handler.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandler_Promote_Success(t *testing.T) {
	fx := createTestAccountHandler(t)

	accountID := uuid.New()
	fx.uc.EXPECT().PromoteToOwner(mock.Anything, "alice@x.com").Return(accountID, nil)

	c, rec := fx.newJSONContext(http.MethodPut, "/accounts/promote/alice@x.com", "")
	c.SetParamNames("email")
	c.SetParamValues("alice@x.com")

	err := fx.handler.Promote(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), accountID.String())
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
