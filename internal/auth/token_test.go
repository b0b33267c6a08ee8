package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 0)
	tok, exp, err := tm.GenerateToken("3f1c7a8e-7d7b-4d0e-9e6a-2b1c0d9e8f7a")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp, time.Minute)

	got, err := tm.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "3f1c7a8e-7d7b-4d0e-9e6a-2b1c0d9e8f7a", got)
}

func TestParseToken_ExpiredAfterThirtyDays(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", DefaultTokenTTL)
	tm.now = func() time.Time { return time.Now().Add(-DefaultTokenTTL - time.Minute) }

	tok, _, err := tm.GenerateToken("shop-1")
	require.NoError(t, err)

	_, err = tm.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_StillValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", DefaultTokenTTL)
	tm.now = func() time.Time { return time.Now().Add(-DefaultTokenTTL + time.Hour) }

	tok, _, err := tm.GenerateToken("shop-1")
	require.NoError(t, err)

	got, err := tm.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).GenerateToken("shop-2")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "shop-3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "shop-4"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
