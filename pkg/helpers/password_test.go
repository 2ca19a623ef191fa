package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.True(t, CompareHashAndPassword(hash, "123456"))
	assert.False(t, CompareHashAndPassword(hash, "654321"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("secret")
	require.NoError(t, err)
	b, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompareHashAndPasswordMalformedHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "secret"))
}
