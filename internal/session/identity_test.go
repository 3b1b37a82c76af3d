package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualifaize-web/internal/model"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeIdentity(t *testing.T) {
	t.Parallel()

	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	raw := signToken(t, jwt.MapClaims{
		"sub":    "alice",
		"userId": "u-1",
		"roles":  []string{"USER", "GUEST"},
		"iat":    issued.Unix(),
		"exp":    expires.Unix(),
	})

	identity, err := DecodeIdentity(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, identity.Token)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, []string{"USER", "GUEST"}, identity.Roles)
	assert.True(t, identity.IssuedAt.Equal(issued))
	assert.True(t, identity.ExpiresAt.Equal(expires))
	assert.False(t, identity.Expired())
}

func TestDecodeIdentityWithoutSubject(t *testing.T) {
	t.Parallel()

	raw := signToken(t, jwt.MapClaims{"userId": "u-1"})

	_, err := DecodeIdentity(raw)
	assert.ErrorIs(t, err, model.ErrMalformedToken)
}

func TestDecodeIdentityGarbage(t *testing.T) {
	t.Parallel()

	_, err := DecodeIdentity("definitely-not-a-jwt")
	assert.ErrorIs(t, err, model.ErrMalformedToken)
}

func TestDecodeIdentityWithoutTimestamps(t *testing.T) {
	t.Parallel()

	raw := signToken(t, jwt.MapClaims{"sub": "bob"})

	identity, err := DecodeIdentity(raw)
	require.NoError(t, err)
	assert.True(t, identity.IssuedAt.IsZero())
	assert.True(t, identity.ExpiresAt.IsZero())
	assert.False(t, identity.Expired())
}

func TestHasRole(t *testing.T) {
	t.Parallel()

	identity := &Identity{Roles: []string{"USER"}}
	assert.True(t, identity.HasRole("USER"))
	assert.True(t, identity.HasRole("user"))
	assert.False(t, identity.HasRole("ADMIN"))

	var nilIdentity *Identity
	assert.False(t, nilIdentity.HasRole("USER"))
}

func TestExpired(t *testing.T) {
	t.Parallel()

	past := &Identity{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, past.Expired())

	future := &Identity{ExpiresAt: time.Now().Add(time.Minute)}
	assert.False(t, future.Expired())
}
