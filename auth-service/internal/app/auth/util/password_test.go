package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("mysecretpassword123")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "mysecretpassword123", hash)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	hash1, err1 := HashPassword("mysecretpassword123")
	hash2, err2 := HashPassword("mysecretpassword123")

	require.NoError(t, err1)
	require.NoError(t, err2)
	// bcrypt использует случайную соль, одинаковые пароли дают разные хэши
	assert.NotEqual(t, hash1, hash2)
}

func TestHashPassword_TooLongRejected(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", maxPasswordBytes+1))

	assert.Error(t, err)
}

func TestHashPassword_MaxLengthAccepted(t *testing.T) {
	password := strings.Repeat("a", maxPasswordBytes)

	hash, err := HashPassword(password)

	require.NoError(t, err)
	assert.True(t, CheckPassword(password, hash))
}

func TestCheckPassword_CorrectPassword(t *testing.T) {
	hash, err := HashPassword("correctpassword123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correctpassword123", hash))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correctpassword123")
	require.NoError(t, err)

	assert.False(t, CheckPassword("wrongpassword", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("somepassword", ""))
	assert.False(t, CheckPassword("somepassword", "not-a-valid-bcrypt-hash"))
}

func TestCheckPassword_CaseSensitive(t *testing.T) {
	hash, err := HashPassword("MyPassword123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("MyPassword123", hash))
	assert.False(t, CheckPassword("mypassword123", hash))
}

func TestCheckPassword_NonASCII(t *testing.T) {
	passwords := []string{
		"password!@#$%^&*()",
		"contrasena segura 2024",
		"пароль на русском",
		"pass word with spaces",
	}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			hash, err := HashPassword(password)

			require.NoError(t, err)
			assert.True(t, CheckPassword(password, hash))
			assert.False(t, CheckPassword(password+"x", hash))
		})
	}
}
