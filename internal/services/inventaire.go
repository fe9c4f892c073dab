package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"

	"go.uber.org/zap"
)

type InventaireServiceInterface interface {
	CreateInventaire(ctx context.Context, data dto.CreateInventaireDTO) (*dto.InventaireDTO, error)
	CreateMyInventaire(ctx context.Context, data dto.CreateMyInventaireDTO) (*dto.InventaireDTO, error)
	UpdateInventaire(ctx context.Context, id uint64, data dto.UpdateInventaireDTO) (*dto.InventaireDTO, error)
	UpdateMyInventaire(ctx context.Context, id uint64, data dto.UpdateInventaireDTO) (*dto.InventaireDTO, error)
	UpdateMyInventaireStatus(ctx context.Context, id uint64, status string) (*dto.InventaireViewDTO, error)
	SoftDeleteInventaire(ctx context.Context, id uint64) error
	UndeleteInventaire(ctx context.Context, id uint64) (*dto.InventaireDTO, error)
	RecalculateEquipmentCount(ctx context.Context, id uint64) (int, error)

	GetInventaires(ctx context.Context, filter types.Filter) ([]dto.InventaireDTO, uint64, error)
	FindInventaire(ctx context.Context, id uint64) (*dto.InventaireDTO, error)
	GetInventairesByName(ctx context.Context, name string) ([]dto.InventaireDTO, error)
	GetInventairesByUser(ctx context.Context, userID uint64) ([]dto.InventaireDTO, error)
	GetInventairesByPlacement(ctx context.Context, placementType string, placementID uint64) ([]dto.InventaireDTO, error)
	GetDeletedInventaires(ctx context.Context) ([]dto.InventaireDTO, error)
	CountInventaires(ctx context.Context) (uint64, error)
	CountInventairesByUser(ctx context.Context, userID uint64) (uint64, error)

	GetMyInventaires(ctx context.Context) ([]dto.InventaireViewDTO, error)
	FindMyInventaire(ctx context.Context, id uint64) (*dto.InventaireViewDTO, error)
	GetMyInventaireStats(ctx context.Context) (*dto.InventaireStatsDTO, error)
}

// InventaireService владеет жизненным циклом инвентаризаций: создание,
// обновление, переходы статуса, мягкое удаление/восстановление и пересчёт
// закешированного счётчика оборудования.
type InventaireService struct {
	inventaireRepository repositories.InventaireRepositoryInterface
	userRepository       repositories.UserRepositoryInterface
	equipmentRepository  repositories.EquipmentRepositoryInterface
	placementService     PlacementServiceInterface
	cacheRepository      repositories.CacheRepositoryInterface
	statsTTL             time.Duration
	logger               *zap.Logger
}

func NewInventaireService(
	inventaireRepository repositories.InventaireRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	placementService PlacementServiceInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	statsTTL time.Duration,
	logger *zap.Logger,
) InventaireServiceInterface {
	return &InventaireService{
		inventaireRepository: inventaireRepository,
		userRepository:       userRepository,
		equipmentRepository:  equipmentRepository,
		placementService:     placementService,
		cacheRepository:      cacheRepository,
		statsTTL:             statsTTL,
		logger:               logger,
	}
}

func (s *InventaireService) CreateInventaire(ctx context.Context, data dto.CreateInventaireDTO) (*dto.InventaireDTO, error) {
	return s.create(ctx, data.Name, data.StartDate, data.AssociatedTo, data.PlacementType, data.IDPlacement, data.Priority, data.InventoryType)
}

func (s *InventaireService) CreateMyInventaire(ctx context.Context, data dto.CreateMyInventaireDTO) (*dto.InventaireDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, data.Name, data.StartDate, actorID, data.PlacementType, data.IDPlacement, data.Priority, data.InventoryType)
}

func (s *InventaireService) create(ctx context.Context, name *string, startDateRaw string, associatedTo uint64, placementType string, idPlacement uint64, priority, inventoryType string) (*dto.InventaireDTO, error) {
	if _, err := s.userRepository.FindUser(ctx, associatedTo); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.placementService.Resolve(ctx, placementType, idPlacement); err != nil {
		return nil, err
	}

	startDate, err := utils.ParseDate(startDateRaw)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат start_date: %s", startDateRaw)
	}

	if priority == "" {
		priority = constants.DefaultPriority
	}

	finalName := utils.SafeDeref(name)
	if finalName == "" {
		finalName = s.placementService.GenerateName(ctx, placementType, idPlacement, startDate)
	}

	count, err := s.equipmentRepository.CountByPlacement(ctx, placementType, idPlacement)
	if err != nil {
		s.logger.Error("не удалось подсчитать оборудование при создании", zap.Error(err))
		return nil, err
	}

	created, err := s.inventaireRepository.CreateInventaire(ctx, entities.Inventaire{
		Name:           finalName,
		Status:         constants.InventaireStatusPending,
		StartDate:      startDate,
		AssociatedTo:   associatedTo,
		PlacementType:  placementType,
		IDPlacement:    idPlacement,
		TotalEquipment: count,
		Priority:       priority,
		InventoryType:  inventoryType,
	})
	if err != nil {
		s.logger.Error("ошибка при создании инвентаризации", zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx, associatedTo)
	s.logger.Info("инвентаризация создана",
		zap.Uint64("id", created.ID),
		zap.String("placementType", placementType),
		zap.Uint64("placementId", idPlacement),
		zap.Int("totalEquipment", count))

	return s.toDTO(created), nil
}

func (s *InventaireService) UpdateInventaire(ctx context.Context, id uint64, data dto.UpdateInventaireDTO) (*dto.InventaireDTO, error) {
	current, err := s.inventaireRepository.FindInventaire(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, id, current, data)
}

// UpdateMyInventaire работает только с записями текущего исполнителя.
// Чужая запись неотличима от отсутствующей.
func (s *InventaireService) UpdateMyInventaire(ctx context.Context, id uint64, data dto.UpdateInventaireDTO) (*dto.InventaireDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.inventaireRepository.FindInventaireForUser(ctx, id, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInventaireNotFound
		}
		return nil, err
	}
	return s.applyUpdate(ctx, id, current, data)
}

func (s *InventaireService) applyUpdate(ctx context.Context, id uint64, current *entities.Inventaire, data dto.UpdateInventaireDTO) (*dto.InventaireDTO, error) {
	merged := *current
	previousUser := current.AssociatedTo

	if data.AssociatedTo != nil && *data.AssociatedTo != current.AssociatedTo {
		if _, err := s.userRepository.FindUser(ctx, *data.AssociatedTo); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, err
		}
		merged.AssociatedTo = *data.AssociatedTo
	}

	finalPlacementType := current.PlacementType
	if data.PlacementType != nil {
		finalPlacementType = *data.PlacementType
	}
	finalIDPlacement := current.IDPlacement
	if data.IDPlacement != nil {
		finalIDPlacement = *data.IDPlacement
	}

	placementChanged := finalPlacementType != current.PlacementType || finalIDPlacement != current.IDPlacement
	if placementChanged {
		if _, err := s.placementService.Resolve(ctx, finalPlacementType, finalIDPlacement); err != nil {
			return nil, err
		}
		merged.PlacementType = finalPlacementType
		merged.IDPlacement = finalIDPlacement

		// Счётчик — снимок, пересчитывается только при смене размещения.
		count, err := s.equipmentRepository.CountByPlacement(ctx, finalPlacementType, finalIDPlacement)
		if err != nil {
			return nil, err
		}
		merged.TotalEquipment = count
	}

	if data.Status != nil && *data.Status != current.Status {
		if !constants.CanTransitionStatus(current.Status, *data.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, current.Status, *data.Status)
		}
		merged.Status = *data.Status
	}

	if data.StartDate != nil {
		startDate, err := utils.ParseDate(*data.StartDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат start_date: %s", *data.StartDate)
		}
		merged.StartDate = startDate
	}

	// Имя не регенерируется: оно фиксируется при создании, меняется
	// только явной передачей.
	if data.Name != nil && *data.Name != "" {
		merged.Name = *data.Name
	}
	if data.Priority != nil {
		merged.Priority = *data.Priority
	}
	if data.InventoryType != nil {
		merged.InventoryType = *data.InventoryType
	}

	if err := s.inventaireRepository.UpdateInventaire(ctx, id, merged); err != nil {
		s.logger.Error("ошибка при обновлении инвентаризации", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx, previousUser)
	if merged.AssociatedTo != previousUser {
		s.invalidateStats(ctx, merged.AssociatedTo)
	}

	updated, err := s.inventaireRepository.FindInventaire(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(updated), nil
}

func (s *InventaireService) UpdateMyInventaireStatus(ctx context.Context, id uint64, status string) (*dto.InventaireViewDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if !constants.IsValidInventaireStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	current, err := s.inventaireRepository.FindInventaireForUser(ctx, id, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInventaireNotFound
		}
		return nil, err
	}

	if !constants.CanTransitionStatus(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, current.Status, status)
	}

	if status != current.Status {
		if err := s.inventaireRepository.UpdateStatusCAS(ctx, id, current.Status, status); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Статус ушёл из-под нас между чтением и записью.
				return nil, fmt.Errorf("%w: запись изменена параллельно", apperrors.ErrInvalidStatusTransition)
			}
			return nil, err
		}
		s.invalidateStats(ctx, actorID)
	}

	updated, err := s.inventaireRepository.FindInventaireForUser(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, updated), nil
}

func (s *InventaireService) SoftDeleteInventaire(ctx context.Context, id uint64) error {
	inv, err := s.inventaireRepository.FindInventaireAny(ctx, id)
	if err != nil {
		return err
	}

	if inv.IsDeleted {
		return apperrors.ErrInventaireAlreadyDeleted
	}

	if err := s.inventaireRepository.SetDeleted(ctx, id, true); err != nil {
		return err
	}

	s.invalidateStats(ctx, inv.AssociatedTo)
	s.logger.Info("инвентаризация помечена удалённой", zap.Uint64("id", id))
	return nil
}

func (s *InventaireService) UndeleteInventaire(ctx context.Context, id uint64) (*dto.InventaireDTO, error) {
	inv, err := s.inventaireRepository.FindInventaireAny(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.IsDeleted {
		return nil, apperrors.ErrInventaireNotDeleted
	}

	if err := s.inventaireRepository.SetDeleted(ctx, id, false); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, inv.AssociatedTo)
	s.logger.Info("инвентаризация восстановлена", zap.Uint64("id", id))

	restored, err := s.inventaireRepository.FindInventaire(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(restored), nil
}

// RecalculateEquipmentCount — явная операция против дрейфа снимка:
// оборудование двигают без касания инвентаризации, снимок стареет.
func (s *InventaireService) RecalculateEquipmentCount(ctx context.Context, id uint64) (int, error) {
	inv, err := s.inventaireRepository.FindInventaire(ctx, id)
	if err != nil {
		return 0, err
	}

	count, err := s.equipmentRepository.CountByPlacement(ctx, inv.PlacementType, inv.IDPlacement)
	if err != nil {
		return 0, err
	}

	if err := s.inventaireRepository.UpdateTotalEquipment(ctx, id, count); err != nil {
		return 0, err
	}

	s.logger.Info("счётчик оборудования пересчитан",
		zap.Uint64("id", id), zap.Int("totalEquipment", count))
	return count, nil
}

func (s *InventaireService) GetInventaires(ctx context.Context, filter types.Filter) ([]dto.InventaireDTO, uint64, error) {
	list, total, err := s.inventaireRepository.GetInventaires(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.toDTOs(list), total, nil
}

func (s *InventaireService) FindInventaire(ctx context.Context, id uint64) (*dto.InventaireDTO, error) {
	inv, err := s.inventaireRepository.FindInventaire(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(inv), nil
}

func (s *InventaireService) GetInventairesByName(ctx context.Context, name string) ([]dto.InventaireDTO, error) {
	list, err := s.inventaireRepository.GetInventairesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return s.toDTOs(list), nil
}

func (s *InventaireService) GetInventairesByUser(ctx context.Context, userID uint64) ([]dto.InventaireDTO, error) {
	if _, err := s.userRepository.FindUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	list, err := s.inventaireRepository.GetInventairesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(list), nil
}

func (s *InventaireService) GetInventairesByPlacement(ctx context.Context, placementType string, placementID uint64) ([]dto.InventaireDTO, error) {
	if _, err := s.placementService.Resolve(ctx, placementType, placementID); err != nil {
		return nil, err
	}

	list, err := s.inventaireRepository.GetInventairesByPlacement(ctx, placementType, placementID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(list), nil
}

func (s *InventaireService) GetDeletedInventaires(ctx context.Context) ([]dto.InventaireDTO, error) {
	list, err := s.inventaireRepository.GetDeletedInventaires(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(list), nil
}

func (s *InventaireService) CountInventaires(ctx context.Context) (uint64, error) {
	return s.inventaireRepository.CountInventaires(ctx)
}

func (s *InventaireService) CountInventairesByUser(ctx context.Context, userID uint64) (uint64, error) {
	if _, err := s.userRepository.FindUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, err
	}
	return s.inventaireRepository.CountInventairesByUser(ctx, userID)
}

func (s *InventaireService) GetMyInventaires(ctx context.Context) ([]dto.InventaireViewDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.inventaireRepository.GetInventairesByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.InventaireViewDTO, 0, len(list))
	for i := range list {
		views = append(views, *s.buildView(ctx, &list[i]))
	}
	return views, nil
}

func (s *InventaireService) FindMyInventaire(ctx context.Context, id uint64) (*dto.InventaireViewDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.inventaireRepository.FindInventaireForUser(ctx, id, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInventaireNotFound
		}
		return nil, err
	}
	return s.buildView(ctx, inv), nil
}

func (s *InventaireService) GetMyInventaireStats(ctx context.Context) (*dto.InventaireStatsDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := statsCacheKey(actorID)
	if cached, err := s.cacheRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		var stats dto.InventaireStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats := dto.InventaireStatsDTO{}
	if stats.Total, err = s.inventaireRepository.CountInventairesByUser(ctx, actorID); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.inventaireRepository.CountByStatusForUser(ctx, actorID, constants.InventaireStatusPending); err != nil {
		return nil, err
	}
	if stats.InProgress, err = s.inventaireRepository.CountByStatusForUser(ctx, actorID, constants.InventaireStatusStarted); err != nil {
		return nil, err
	}
	if stats.Completed, err = s.inventaireRepository.CountByStatusForUser(ctx, actorID, constants.InventaireStatusDone); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(&stats); err == nil {
		if err := s.cacheRepository.Set(ctx, cacheKey, string(payload), s.statsTTL); err != nil {
			s.logger.Warn("не удалось закешировать статистику", zap.Error(err))
		}
	}

	return &stats, nil
}

func statsCacheKey(userID uint64) string {
	return fmt.Sprintf("inventaire:stats:user:%d", userID)
}

func (s *InventaireService) invalidateStats(ctx context.Context, userID uint64) {
	if err := s.cacheRepository.Del(ctx, statsCacheKey(userID)); err != nil {
		s.logger.Warn("не удалось сбросить кеш статистики", zap.Uint64("userId", userID), zap.Error(err))
	}
}

// buildView собирает обогащённое представление: имя размещения и живой
// счётчик оборудования. Пропавшее размещение — не ошибка, emplacement
// остаётся пустым.
func (s *InventaireService) buildView(ctx context.Context, inv *entities.Inventaire) *dto.InventaireViewDTO {
	view := &dto.InventaireViewDTO{
		IDInventaire:  inv.ID,
		Name:          inv.Name,
		InventoryType: inv.InventoryType,
		StartDate:     inv.StartDate.Format("2006-01-02"),
		Status:        inv.Status,
		Priority:      inv.Priority,
		PlacementType: inv.PlacementType,
	}

	if ref, err := s.placementService.Resolve(ctx, inv.PlacementType, inv.IDPlacement); err == nil {
		view.Emplacement = utils.ToPtr(ref.Name)
		if count, err := s.equipmentRepository.CountByPlacement(ctx, inv.PlacementType, inv.IDPlacement); err == nil {
			view.EquipCount = count
		}
	}

	if user, err := s.userRepository.FindUser(ctx, inv.AssociatedTo); err == nil {
		view.AssociatedUser = dto.ShortUserDTO{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	return view
}

func (s *InventaireService) toDTO(inv *entities.Inventaire) *dto.InventaireDTO {
	out := &dto.InventaireDTO{
		IDInventaire:   inv.ID,
		Name:           inv.Name,
		Status:         inv.Status,
		StartDate:      inv.StartDate.Format("2006-01-02"),
		AssociatedTo:   inv.AssociatedTo,
		PlacementType:  inv.PlacementType,
		IDPlacement:    inv.IDPlacement,
		TotalEquipment: inv.TotalEquipment,
		Priority:       inv.Priority,
		InventoryType:  inv.InventoryType,
		CreatedAt:      utils.FormatTimestamp(inv.CreatedAt),
		UpdatedAt:      utils.FormatTimestamp(inv.UpdatedAt),
	}
	if inv.DeletedAt.Valid {
		out.DeletedAt = utils.FormatTimestamp(inv.DeletedAt.Time)
	}
	return out
}

func (s *InventaireService) toDTOs(list []entities.Inventaire) []dto.InventaireDTO {
	out := make([]dto.InventaireDTO, 0, len(list))
	for i := range list {
		out = append(out, *s.toDTO(&list[i]))
	}
	return out
}
