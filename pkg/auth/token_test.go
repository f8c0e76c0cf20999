package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

func testIssuer(t *testing.T, secret string) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(config.JWTConfig{Secret: secret, Issuer: "pawhaven", ExpirationMinutes: 7 * 24 * 60})
	require.NoError(t, err)
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	issuer := testIssuer(t, "secret")
	now := time.Now().UTC()
	who := Identity{UserID: uuid.New(), Role: enums.UserRoleOwner, Name: "Dana"}

	token, err := issuer.Issue(who, now)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, who, claims.Identity())
	assert.Equal(t, "pawhaven", claims.Issuer)
	assert.Equal(t, who.UserID.String(), claims.Subject)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, err := testIssuer(t, "secret").Issue(Identity{UserID: uuid.New(), Role: enums.UserRoleAdopter}, time.Now())
	require.NoError(t, err)

	_, err = testIssuer(t, "different").Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := testIssuer(t, "secret")
	token, err := issuer.Issue(Identity{UserID: uuid.New(), Role: enums.UserRoleAdopter}, time.Now().Add(-8*24*time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	claims := Claims{UserID: uuid.New(), Role: enums.UserRoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "pawhaven",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testIssuer(t, "secret").Verify(token)
	assert.Error(t, err)
}

func TestIssueValidatesIdentity(t *testing.T) {
	issuer := testIssuer(t, "secret")
	_, err := issuer.Issue(Identity{Role: enums.UserRoleAdopter}, time.Now())
	assert.Error(t, err)
	_, err = issuer.Issue(Identity{UserID: uuid.New(), Role: "guest"}, time.Now())
	assert.Error(t, err)
}

func TestNewIssuerValidatesConfig(t *testing.T) {
	for _, cfg := range []config.JWTConfig{
		{Issuer: "pawhaven", ExpirationMinutes: 60},
		{Secret: "secret", ExpirationMinutes: 60},
		{Secret: "secret", Issuer: "pawhaven"},
	} {
		_, err := NewIssuer(cfg)
		assert.Error(t, err)
	}
}
