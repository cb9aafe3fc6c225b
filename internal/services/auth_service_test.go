// internal/services/auth_service_test.go
package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/utils"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := services.NewAuthService(&config.Config{
		AdminUsername:     "operator",
		AdminPasswordHash: string(hash),
		AuthSecretKey:     "test-secret-key-test-secret-key!",
		AuthTokenTTL:      time.Hour,
	}, utils.GetLogger())
	require.NoError(t, err)
	return svc
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Authenticate("", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorizedError(err))
	assert.EqualError(t, err, "invalid username or password")
}

func TestAuthenticate_WrongCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Authenticate("wrong", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorizedError(err))
	// Same generic message as the empty-input case
	assert.EqualError(t, err, "invalid username or password")

	_, err = svc.Authenticate("operator", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid username or password")
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Authenticate("operator", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, session)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newAuthService(t)
	token, err := svc.Authenticate("operator", "correct horse")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	other, err := services.NewAuthService(&config.Config{
		AdminUsername:     "operator",
		AdminPasswordHash: string(hash),
		AuthSecretKey:     "another-secret-key-entirely-----",
		AuthTokenTTL:      time.Hour,
	}, utils.GetLogger())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestNewAuthService_HashesPlaintextFallback(t *testing.T) {
	svc, err := services.NewAuthService(&config.Config{
		AdminUsername: "operator",
		AdminPassword: "dev-password",
		AuthSecretKey: "test-secret-key-test-secret-key!",
		AuthTokenTTL:  time.Hour,
	}, utils.GetLogger())
	require.NoError(t, err)

	_, err = svc.Authenticate("operator", "dev-password")
	assert.NoError(t, err)
}
