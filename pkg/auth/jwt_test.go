package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Ang3lito/rabiesresq/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: "nurse@clinic.example",
		Role:  model.RoleClinicPersonnel,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret"})
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret", RefreshSecret: "other-secret"})
	user := testUser()

	token, err := svc.GenerateRefreshToken(user)
	assert.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestResetTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret"})
	user := testUser()

	token, err := svc.GenerateResetToken(user)
	assert.NoError(t, err)

	claims, err := svc.ValidateResetToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestTokenPurposeIsEnforced(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret"})
	user := testUser()

	access, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(user)
	assert.NoError(t, err)
	reset, err := svc.GenerateResetToken(user)
	assert.NoError(t, err)

	// A token minted for one purpose must not validate as another.
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateResetToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret", AccessExpiry: -time.Minute})
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(Config{Secret: "secret-a"})
	verifier := NewJWTService(Config{Secret: "secret-b"})

	token, err := issuer.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret"})

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfigDefaults(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret"})
	assert.Equal(t, 24*time.Hour, svc.AccessExpiry())
}
