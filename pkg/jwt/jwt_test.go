package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTripsRoleAndPermissions(t *testing.T) {
	token, err := Generate("s3cret", "user-1", "cashier", []string{"orders.discount"}, "optica", 5)
	require.NoError(t, err)

	claims, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, []string{"orders.discount"}, claims.Permissions)
	assert.Equal(t, "optica", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("s3cret", "user-1", "admin", nil, "optica", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("s3cret", "user-1", "admin", nil, "optica", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "user-1", "admin", nil, "optica", 5)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	claims := Claims{UserID: "user-1", Role: "admin"}
	claims.ExpiresAt = jwtlib.NewNumericDate(time.Now().Add(time.Minute))
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.Error(t, err)
}

func TestParse_SinUserID(t *testing.T) {
	token, err := Generate("s3cret", "", "admin", nil, "optica", 5)
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
