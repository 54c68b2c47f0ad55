package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword("admin123", hash))
	assert.False(t, CheckPassword("admin124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltedPerRecord(t *testing.T) {
	h1, err := HashPassword("secret")
	require.NoError(t, err)
	h2, err := HashPassword("secret")
	require.NoError(t, err)

	// bcrypt salts per call; both digests still verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("secret", h1))
	assert.True(t, CheckPassword("secret", h2))
}

func TestCheckPassword_GarbageDigest(t *testing.T) {
	assert.False(t, CheckPassword("secret", ""))
	assert.False(t, CheckPassword("secret", "not-a-bcrypt-digest"))
}

func TestCheckDummy(t *testing.T) {
	assert.False(t, CheckDummy("anything"))
	assert.False(t, CheckDummy(""))
}
