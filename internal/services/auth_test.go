package services

import (
	"context"
	"testing"
	"time"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/config"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeCacheRepository) {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := &fakeUserRepository{users: map[uint64]*entities.User{
		5: {ID: 5, Name: "Умед Рахимов", Email: "umed@example.com", Password: hash},
	}}
	cache := &fakeCacheRepository{values: map[string]string{}}
	cfg := &config.Config{
		Auth: config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute},
	}

	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour*24)
	return NewAuthService(users, cache, jwtSvc, cfg, zap.NewNop()), cache
}

func TestLoginSuccess(t *testing.T) {
	svc, cache := newAuthFixture(t)

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "umed@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// успешный вход сбрасывает счётчик попыток
	assert.NotContains(t, cache.values, "auth:attempts:umed@example.com")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "umed@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// Несуществующий email неотличим от неверного пароля.
func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterTooManyAttempts(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "umed@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, dto.LoginDTO{Email: "umed@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
}
