package accounts_test

import (
	"testing"

	"launchbay-gateway/internal/auth/accounts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, version, err := accounts.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.Equal(t, accounts.HashVersionBcrypt, version)
	assert.NoError(t, accounts.VerifyPassword(hash, "correct horse battery"))
	assert.Error(t, accounts.VerifyPassword(hash, "wrong horse battery"))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, _, err := accounts.HashPassword("short")
	assert.Error(t, err)
}
