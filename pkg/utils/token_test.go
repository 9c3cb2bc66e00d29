package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(JWTConfig{Secret: "test-secret", ExpiryHours: 2})
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return fixed }

	userID := uuid.New()
	token, expiresAt, err := tm.Generate(userID)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(2*time.Hour), expiresAt)

	got, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	issued := time.Now().Add(-3 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, _, err := tm.Generate(uuid.New())
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(JWTConfig{Secret: "one"}).Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenManager(JWTConfig{Secret: "two"}).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(JWTConfig{Secret: "secret"}).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_BadSubject(t *testing.T) {
	tm := NewTokenManager(JWTConfig{Secret: "secret"})
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager(JWTConfig{Secret: "secret"})
	assert.Equal(t, 24*time.Hour, tm.ttl)
}
