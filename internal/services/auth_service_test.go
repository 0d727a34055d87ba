package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/repository"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	store := newTestStore(t)
	userRepo := repository.NewUserRepository(store.DB())
	return NewAuthService(userRepo, "test-secret", time.Hour, bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestAuthService(t)

	user, token, err := svc.Register("Alice", "alice@example.com", "s3cret42")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret42", user.PasswordHash)

	got, token, err := svc.Authenticate("alice@example.com", "s3cret42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Register("Alice", "alice@example.com", "s3cret42")
	require.NoError(t, err)

	_, _, err = svc.Register("Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Authenticate("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Register("Alice", "alice@example.com", "s3cret42")
	require.NoError(t, err)

	_, _, err = svc.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	store := newTestStore(t)
	userRepo := repository.NewUserRepository(store.DB())

	issuer := NewAuthService(userRepo, "secret-a", time.Hour, bcrypt.MinCost)
	verifier := NewAuthService(userRepo, "secret-b", time.Hour, bcrypt.MinCost)

	token, err := issuer.IssueToken(7)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	store := newTestStore(t)
	userRepo := repository.NewUserRepository(store.DB())

	svc := NewAuthService(userRepo, "test-secret", -time.Hour, bcrypt.MinCost)

	token, err := svc.IssueToken(7)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
