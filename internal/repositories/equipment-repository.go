package repositories

import (
	"context"

	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentTable = "equipments"

// EquipmentRepositoryInterface — счётчик оборудования для ядра инвентаризаций.
// Учитываются только неудалённые строки с совпадающим размещением.
type EquipmentRepositoryInterface interface {
	CountByPlacement(ctx context.Context, placementType string, placementID uint64) (int, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
	}
}

func (r *EquipmentRepository) CountByPlacement(ctx context.Context, placementType string, placementID uint64) (int, error) {
	var placementColumn string
	switch placementType {
	case constants.PlacementTypeDesk:
		placementColumn = "desk_id"
	case constants.PlacementTypeSection:
		placementColumn = "section_id"
	default:
		return 0, apperrors.ErrInvalidPlacementType
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From(equipmentTable).
		Where(sq.Eq{placementColumn: placementID, "is_deleted": false}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
