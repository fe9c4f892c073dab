package repositories

import (
	"context"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deskTable = "desks"
const sectionTable = "sections"

// PlacementRepositoryInterface — доступ к двум конкретным таблицам размещений.
// Выбор таблицы по дискриминатору делает сервис, не репозиторий.
type PlacementRepositoryInterface interface {
	FindDesk(ctx context.Context, id uint64) (*entities.PlacementRef, error)
	FindSection(ctx context.Context, id uint64) (*entities.PlacementRef, error)
}

type PlacementRepository struct {
	storage *pgxpool.Pool
}

func NewPlacementRepository(storage *pgxpool.Pool) PlacementRepositoryInterface {
	return &PlacementRepository{
		storage: storage,
	}
}

func (r *PlacementRepository) FindDesk(ctx context.Context, id uint64) (*entities.PlacementRef, error) {
	return r.findRef(ctx, deskTable, id)
}

func (r *PlacementRepository) FindSection(ctx context.Context, id uint64) (*entities.PlacementRef, error) {
	return r.findRef(ctx, sectionTable, id)
}

func (r *PlacementRepository) findRef(ctx context.Context, table string, id uint64) (*entities.PlacementRef, error) {
	var ref entities.PlacementRef

	err := r.storage.QueryRow(ctx, "SELECT id, name FROM "+table+" WHERE id = $1", id).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &ref, nil
}
