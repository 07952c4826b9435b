package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "vinylshop",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "vinylshop", claims.Issuer)
}

func TestParseWrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign("user-123")
	require.NoError(t, err)

	other := testTokens()
	other.Secret = []byte("different-secret")

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign("user-123")
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsOtherSigningMethods(t *testing.T) {
	ts := testTokens()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(ts.Secret)
	require.NoError(t, err)

	_, err = ts.Parse(signed)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := testTokens().Parse("not-a-token")
	assert.Error(t, err)
}
