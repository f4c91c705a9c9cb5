package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil()

	token, err := util.GenerateToken("user-1", "driver@example.com", "driver")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "driver@example.com", claims.Email)
	assert.Equal(t, "driver", claims.Role)
	assert.Equal(t, "transport-management-system", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	util := NewJWTUtil()

	_, err := util.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := &JWTUtil{secretKey: []byte("one-secret"), expiry: time.Hour}
	verifier := &JWTUtil{secretKey: []byte("another-secret"), expiry: time.Hour}

	token, err := issuer.GenerateToken("user-1", "driver@example.com", "driver")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
