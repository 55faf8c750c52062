package services

import (
	"fmt"
	"testing"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (AuthService, *fakeSessionStore) {
	sessions := newFakeSessionStore()
	svc := NewAuthService(
		repository.NewProfileRepository(db),
		sessions,
		"test-secret",
		time.Hour,
	)
	return svc, sessions
}

func registerInput(role string) RegisterInput {
	emailSeq++
	return RegisterInput{
		Name:     "Auth User",
		Email:    fmt.Sprintf("auth%d@example.com", emailSeq),
		Password: "hunter2hunter2",
		Role:     role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc, sessions := newAuthService(db)

	input := registerInput("consumer")
	profile, err := svc.Register(input)
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.NotEqual(t, input.Password, profile.PasswordHash)

	token, logged, err := svc.Login(input.Email, input.Password)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, profile.ID, logged.ID)
	assert.Len(t, sessions.sessions, 1)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, "consumer", claims.Role)

	current, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, input.Email, current.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(db)

	input := registerInput("farmer")
	_, err := svc.Register(input)
	require.NoError(t, err)

	input.Name = "Someone Else"
	_, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(db)

	input := registerInput("consumer")
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, _, err = svc.Login(input.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, _, err = svc.Login("nobody@example.com", input.Password)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc, sessions := newAuthService(db)

	input := registerInput("consumer")
	_, err := svc.Register(input)
	require.NoError(t, err)
	token, _, err := svc.Login(input.Email, input.Password)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))
	assert.Empty(t, sessions.sessions)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestValidateRejectsForgedToken(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(db)

	_, err := svc.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	otherDB := setupTestDB(t)
	other := NewAuthService(
		repository.NewProfileRepository(otherDB),
		newFakeSessionStore(),
		"different-secret",
		time.Hour,
	)
	input := registerInput("consumer")
	_, err = other.Register(input)
	require.NoError(t, err)
	foreign, _, err := other.Login(input.Email, input.Password)
	require.NoError(t, err)

	_, err = svc.Validate(foreign)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
