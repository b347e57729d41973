package provisioning

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndVerify(t *testing.T) {
	tokens := NewTokenService("secret")

	signed, err := tokens.Mint("owner-1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	owner, err := tokens.VerifyProvisionToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signed, err := NewTokenService("secret-a").Mint("owner-1")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").VerifyProvisionToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret").VerifyProvisionToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// A session token minted with the same secret but without the cart:create
// scope must not pass as a provisioning credential.
func TestVerifyRequiresScope(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "owner-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret").VerifyProvisionToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "owner-1",
		"scope":   "cart:create",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret").VerifyProvisionToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
