package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	tok, _, err := NewJWTManager("secret", time.Hour).GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).ParseToken(tok)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }
	tok, _, err := m.GenerateToken("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ParseToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsMalformedAndNone(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, err := m.ParseToken("not.a.token")
	assert.Error(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseToken(s)
	assert.Error(t, err)
}
