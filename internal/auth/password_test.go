package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatstarter/internal/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.VerifyPassword("s3cret-password", hash))
	assert.False(t, auth.VerifyPassword("wrong-password", hash))
}

func TestHashPassword_LongPasswordsKeepFullEntropy(t *testing.T) {
	// bcrypt truncates raw input at 72 bytes. The SHA-256 preprocessing step
	// must keep passwords that only differ after byte 72 distinguishable.
	base := strings.Repeat("a", 80)
	hash, err := auth.HashPassword(base)
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword(base, hash))
	assert.False(t, auth.VerifyPassword(base+"b", hash))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := auth.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
