package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken_RoundTrip(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken(secret, "64b7f0f0f0f0f0f0f0f0f0f0", "a@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0f0f0f0f0f0f0f0f0f0", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestParseToken_Failures(t *testing.T) {
	secret := []byte("secret")

	expired, err := GenerateToken(secret, "id", "a@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	valid, err := GenerateToken(secret, "id", "a@example.com", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken([]byte("other"), valid)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken(nil, valid)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@example.com"}).SignedString(secret)
	require.NoError(t, err)
	_, err = ParseToken(secret, noID)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, err := GenerateToken(nil, "id", "a@example.com", time.Hour)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 35000.0, DecoratorEarning(50000))
	assert.Equal(t, 87.5, DecoratorEarning(125))
	assert.Equal(t, int64(123456), ToMinorUnits(1234.56))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
}

func TestAppErrorStatus(t *testing.T) {
	assert.Equal(t, 400, ValidationError("x").Status())
	assert.Equal(t, 400, NewError(KindAlreadyPaid, "paid").Status())
	assert.Equal(t, 404, NotFound("x").Status())
	assert.Equal(t, 403, Forbidden("x").Status())
	assert.Equal(t, 401, Unauthenticated("x").Status())
	assert.Equal(t, 500, Internal("x", nil).Status())
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
}
