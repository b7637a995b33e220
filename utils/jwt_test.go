package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/models"
)

func TestSessionRoundTrip(t *testing.T) {
	token, err := GenerateToken(models.Session{UserID: "prov-1", Role: models.RoleProvider}, time.Hour)
	require.NoError(t, err)

	session, err := SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", session.UserID)
	assert.Equal(t, models.RoleProvider, session.Role)
}

func TestSessionFromTokenRejects(t *testing.T) {
	expired, err := GenerateToken(models.Session{UserID: "c1", Role: models.RoleClient}, -time.Minute)
	require.NoError(t, err)
	_, err = SessionFromToken(expired)
	assert.Error(t, err, "expired")

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "c1"})
	signed, err := foreign.SignedString([]byte("someone-else"))
	require.NoError(t, err)
	_, err = SessionFromToken(signed)
	assert.Error(t, err, "wrong key")

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "c1", "role": "root"})
	signed, err = badRole.SignedString(secretKey())
	require.NoError(t, err)
	_, err = SessionFromToken(signed)
	assert.Error(t, err, "unknown role")

	_, err = SessionFromToken("not-a-token")
	assert.Error(t, err)
}

func TestSessionDefaultsToClient(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "c9"})
	signed, err := tok.SignedString(secretKey())
	require.NoError(t, err)

	session, err := SessionFromToken(signed)
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: "c9", Role: models.RoleClient}, session)
}
