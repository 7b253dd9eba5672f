package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sift/pkg/domain-errors"
)

const (
	testKey      = "test-signing-key"
	testIssuer   = "http://localhost:8080"
	testAudience = "sift-clients"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(testKey, testIssuer, testAudience, ttl)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	token, jti, err := svc.GenerateServiceToken("screening-pipeline")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "screening-pipeline", claims.ServiceID)
	assert.Equal(t, "screening-pipeline", claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestGenerateRequiresServiceID(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, _, err := svc.GenerateServiceToken("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	token, _, err := svc.GenerateServiceToken("screening-pipeline")
	require.NoError(t, err)

	other := NewJWTService("different-key", testIssuer, testAudience, 15*time.Minute)
	_, err = other.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService(-1 * time.Minute)
	token, _, err := svc.GenerateServiceToken("screening-pipeline")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	minter := NewJWTService(testKey, testIssuer, "someone-else", 15*time.Minute)
	token, _, err := minter.GenerateServiceToken("screening-pipeline")
	require.NoError(t, err)

	svc := newTestService(15 * time.Minute)
	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	_, err := svc.ValidateToken("not.a.jwt")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
