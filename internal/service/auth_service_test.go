package service

import (
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func staffConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("tuyensinh2026"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		StaffUsername:     "admission",
		StaffPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		BcryptCost:        bcrypt.MinCost,
	}
}

func TestAuthLoginAndValidate(t *testing.T) {
	svc := NewAuthService(staffConfig(t))

	token, err := svc.Login("admission", "tuyensinh2026")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admission", claims.Username)
	assert.Equal(t, TokenTypeStaff, claims.TokenType)
}

func TestAuthLoginRejects(t *testing.T) {
	svc := NewAuthService(staffConfig(t))

	_, err := svc.Login("admission", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("root", "tuyensinh2026")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	disabled := NewAuthService(&config.Config{StaffUsername: "admission"})
	_, err = disabled.Login("admission", "x")
	assert.ErrorIs(t, err, ErrStaffDisabled)
}

func TestAuthValidateExpiredAndForeign(t *testing.T) {
	cfg := staffConfig(t)
	svc := NewAuthService(cfg)
	token, err := svc.GenerateToken("admission")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "other", JWTExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	svc := NewAuthService(staffConfig(t))
	hash, err := svc.HashPassword("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}
