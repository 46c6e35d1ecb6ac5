package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateAdminJWT(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	adminID, err := ParseAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), adminID)
}

func TestAdminJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	_, err := ParseAdminJWT("not.a.token")
	assert.Error(t, err)
}

func TestAdminJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	InitJWT()
	token, err := GenerateAdminJWT(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	InitJWT()
	_, err = ParseAdminJWT(token)
	assert.Error(t, err)
}
