package auth

import (
	"testing"

	domainerrors "shophere/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "s3cretPass!"
	digest, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, password, digest)

	// Verify the digest can be checked
	ok, err := hasher.Check(password, digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-input")
	require.NoError(t, err)
	second, err := hasher.Hash("same-input")
	require.NoError(t, err)

	// Salted: byte-identical digests are not required, both must verify.
	assert.NotEqual(t, first, second)

	for _, digest := range []string{first, second} {
		ok, err := hasher.Check("same-input", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "s3cretPass!"

	digest, err := hasher.Hash(password)
	require.NoError(t, err)

	// Correct password
	ok, err := hasher.Check(password, digest)
	require.NoError(t, err)
	assert.True(t, ok)

	// Incorrect password: uniform false, no error
	ok, err = hasher.Check("wrongPass", digest)
	require.NoError(t, err)
	assert.False(t, ok)

	// Empty password
	ok, err = hasher.Check("", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	hasher := NewBcryptHasher()

	ok, err := hasher.Check("anything", "not-a-bcrypt-digest")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedDigest))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	digest, err := hasher.Hash("s3cretPass!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasherWithCost(99)

	digest, err := hasher.Hash("s3cretPass!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
