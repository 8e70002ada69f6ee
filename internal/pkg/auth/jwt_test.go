package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "courseloop-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(42, "jane.doe@my.centennialcollege.ca", "STUDENT")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane.doe@my.centennialcollege.ca", claims.Email)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, "courseloop-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(42, "jane.doe@my.centennialcollege.ca", "STUDENT")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testJWTService(time.Hour).GenerateToken(42, "jane.doe@my.centennialcollege.ca", "STUDENT")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour, TokenIssuer: "courseloop-test"})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic abc123")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
