package auth

import (
	"testing"
	"time"

	"shophere/config"
	"shophere/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: ttl},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, svc)

	token, err := svc.Issue("alice@x.com", entity.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "alice@x.com", claims.Subject)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestJWTService_MissingSecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(time.Minute))
	require.NoError(t, err)

	claims, err := svc.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_WrongSignature(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig(time.Minute))
	require.NoError(t, err)

	other := newTestJWTConfig(time.Minute)
	other.SecretKey.Access = "a_completely_different_secret_key_value"
	validator, err := NewJWTService(other)
	require.NoError(t, err)

	token, err := issuer.Issue("alice@x.com", entity.RoleOwner)
	require.NoError(t, err)

	claims, err := validator.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(-time.Minute))
	require.NoError(t, err)

	token, err := svc.Issue("alice@x.com", entity.RoleUser)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
