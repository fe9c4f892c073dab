package services

import (
	"context"
	"errors"
	"time"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"go.uber.org/zap"
)

type PlacementServiceInterface interface {
	Resolve(ctx context.Context, placementType string, placementID uint64) (*entities.PlacementRef, error)
	GenerateName(ctx context.Context, placementType string, placementID uint64, startDate time.Time) string
}

type PlacementService struct {
	placementRepository repositories.PlacementRepositoryInterface
	logger              *zap.Logger
}

func NewPlacementService(placementRepository repositories.PlacementRepositoryInterface,
	logger *zap.Logger,
) PlacementServiceInterface {
	return &PlacementService{
		placementRepository: placementRepository,
		logger:              logger,
	}
}

// Resolve находит конкретное размещение по дискриминатору.
// Неизвестный дискриминатор — ошибка вызывающего, до репозитория не доходит.
func (s *PlacementService) Resolve(ctx context.Context, placementType string, placementID uint64) (*entities.PlacementRef, error) {
	var ref *entities.PlacementRef
	var err error

	switch placementType {
	case constants.PlacementTypeDesk:
		ref, err = s.placementRepository.FindDesk(ctx, placementID)
	case constants.PlacementTypeSection:
		ref, err = s.placementRepository.FindSection(ctx, placementID)
	default:
		return nil, apperrors.ErrInvalidPlacementType
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPlacementNotFound
		}
		return nil, err
	}

	return ref, nil
}

// GenerateName строит имя по умолчанию: "<имя размещения>_<дата начала>".
// Если размещение не нашлось, подставляется заглушка вместо ошибки —
// генерация имени не должна валить операцию целиком.
func (s *PlacementService) GenerateName(ctx context.Context, placementType string, placementID uint64, startDate time.Time) string {
	placementName := s.placementName(ctx, placementType, placementID)
	return placementName + "_" + utils.FormatLocalDate(startDate)
}

func (s *PlacementService) placementName(ctx context.Context, placementType string, placementID uint64) string {
	ref, err := s.Resolve(ctx, placementType, placementID)
	if err == nil {
		return ref.Name
	}

	s.logger.Warn("размещение для генерации имени не найдено",
		zap.String("placementType", placementType),
		zap.Uint64("placementId", placementID),
		zap.Error(err))

	switch placementType {
	case constants.PlacementTypeDesk:
		return "Unknown Desk"
	case constants.PlacementTypeSection:
		return "Unknown Section"
	}
	return "Unknown Placement"
}
