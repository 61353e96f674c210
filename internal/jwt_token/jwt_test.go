package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "campus/pkg/domain-errors"
)

func newService() *JWTService {
	return NewJWTService("test-signing-key", "campus", "campus-api")
}

func TestGenerateAndValidate(t *testing.T) {
	service := newService()
	userID := uuid.New()

	token, err := service.GenerateAccessToken(userID, "fr", true, time.Minute)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "fr", claims.Locale)
	assert.True(t, claims.Staff)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service := newService()

	token, err := service.GenerateAccessToken(uuid.New(), "", false, -time.Minute)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := newService().GenerateAccessToken(uuid.New(), "", false, time.Minute)
	require.NoError(t, err)

	other := NewJWTService("other-key", "campus", "campus-api")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	issuer := NewJWTService("test-signing-key", "campus", "other-api")
	token, err := issuer.GenerateAccessToken(uuid.New(), "", false, time.Minute)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newService().ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAdapterExposesMiddlewareClaims(t *testing.T) {
	service := newService()
	userID := uuid.New()
	token, err := service.GenerateAccessToken(userID, "de", false, time.Minute)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(service).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "de", claims.Locale)
	assert.False(t, claims.Staff)
}
