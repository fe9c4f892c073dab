package services

import (
	"context"
	"errors"
	"fmt"

	"inventory-system/internal/dto"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepository  repositories.UserRepositoryInterface
	cacheRepository repositories.CacheRepositoryInterface
	jwtService      service.JWTService
	cfg             *config.Config
	logger          *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
		jwtService:      jwtService,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error) {
	attemptsKey := fmt.Sprintf("auth:attempts:%s", data.Email)

	attempts, err := s.cacheRepository.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("счётчик попыток входа недоступен", zap.Error(err))
	} else {
		if attempts == 1 {
			if _, err := s.cacheRepository.Expire(ctx, attemptsKey, s.cfg.Auth.LockoutDuration); err != nil {
				s.logger.Warn("не удалось выставить TTL счётчика попыток", zap.Error(err))
			}
		}
		if attempts > int64(s.cfg.Auth.MaxLoginAttempts) {
			s.logger.Warn("превышен лимит попыток входа", zap.String("email", data.Email))
			return nil, apperrors.ErrTooManyAttempts
		}
	}

	user, err := s.userRepository.FindUserByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, data.Password); err != nil {
		s.logger.Warn("неверный пароль", zap.String("email", data.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(int(user.ID), user.IsAdmin)
	if err != nil {
		s.logger.Error("ошибка генерации токенов", zap.Error(err))
		return nil, err
	}

	if err := s.cacheRepository.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("не удалось сбросить счётчик попыток", zap.Error(err))
	}

	s.logger.Info("пользователь вошёл в систему", zap.Uint64("userId", user.ID))
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
