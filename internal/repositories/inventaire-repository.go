package repositories

import (
	"context"
	"fmt"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inventaireTable = "inventaires"
const inventaireFields = "id_inventaire, name, status, start_date, associated_to, placement_type, id_placement, total_equipment, priority, inventory_type, is_deleted, deleted_at, created_at, updated_at"

var inventaireAllowedFilterColumns = []string{"status", "priority", "placement_type", "inventory_type", "associated_to"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type InventaireRepositoryInterface interface {
	CreateInventaire(ctx context.Context, inv entities.Inventaire) (*entities.Inventaire, error)
	FindInventaire(ctx context.Context, id uint64) (*entities.Inventaire, error)
	FindInventaireForUser(ctx context.Context, id uint64, userID uint64) (*entities.Inventaire, error)
	FindInventaireAny(ctx context.Context, id uint64) (*entities.Inventaire, error)
	GetInventaires(ctx context.Context, filter types.Filter) ([]entities.Inventaire, uint64, error)
	GetInventairesByUser(ctx context.Context, userID uint64) ([]entities.Inventaire, error)
	GetInventairesByPlacement(ctx context.Context, placementType string, placementID uint64) ([]entities.Inventaire, error)
	GetInventairesByName(ctx context.Context, name string) ([]entities.Inventaire, error)
	GetDeletedInventaires(ctx context.Context) ([]entities.Inventaire, error)
	CountInventaires(ctx context.Context) (uint64, error)
	CountInventairesByUser(ctx context.Context, userID uint64) (uint64, error)
	CountByStatusForUser(ctx context.Context, userID uint64, status string) (uint64, error)
	UpdateInventaire(ctx context.Context, id uint64, inv entities.Inventaire) error
	UpdateStatusCAS(ctx context.Context, id uint64, currentStatus, newStatus string) error
	UpdateTotalEquipment(ctx context.Context, id uint64, total int) error
	SetDeleted(ctx context.Context, id uint64, deleted bool) error
}

type InventaireRepository struct {
	storage *pgxpool.Pool
}

func NewInventaireRepository(storage *pgxpool.Pool) InventaireRepositoryInterface {
	return &InventaireRepository{
		storage: storage,
	}
}

func (r *InventaireRepository) CreateInventaire(ctx context.Context, inv entities.Inventaire) (*entities.Inventaire, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (name, status, start_date, associated_to, placement_type, id_placement, total_equipment, priority, inventory_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING %s
    `, inventaireTable, inventaireFields)

	row := r.storage.QueryRow(ctx, query,
		inv.Name,
		inv.Status,
		inv.StartDate,
		inv.AssociatedTo,
		inv.PlacementType,
		inv.IDPlacement,
		inv.TotalEquipment,
		inv.Priority,
		inv.InventoryType,
	)

	return r.scanInventaire(row)
}

func (r *InventaireRepository) FindInventaire(ctx context.Context, id uint64) (*entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id_inventaire = $1 AND is_deleted = FALSE", inventaireFields, inventaireTable)
	return r.scanInventaire(r.storage.QueryRow(ctx, query, id))
}

// FindInventaireForUser ищет запись, привязанную к конкретному исполнителю.
// Чужая запись неотличима от отсутствующей — существование не раскрывается.
func (r *InventaireRepository) FindInventaireForUser(ctx context.Context, id uint64, userID uint64) (*entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id_inventaire = $1 AND associated_to = $2 AND is_deleted = FALSE", inventaireFields, inventaireTable)
	return r.scanInventaire(r.storage.QueryRow(ctx, query, id, userID))
}

// FindInventaireAny не фильтрует по is_deleted: нужен для soft-delete/undelete.
func (r *InventaireRepository) FindInventaireAny(ctx context.Context, id uint64) (*entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id_inventaire = $1", inventaireFields, inventaireTable)
	return r.scanInventaire(r.storage.QueryRow(ctx, query, id))
}

func (r *InventaireRepository) GetInventaires(ctx context.Context, filter types.Filter) ([]entities.Inventaire, uint64, error) {
	conditions := sq.And{sq.Eq{"is_deleted": false}}

	for key, val := range filter.Filter {
		for _, allowed := range inventaireAllowedFilterColumns {
			if key == allowed {
				conditions = append(conditions, sq.Eq{key: val})
			}
		}
	}

	if filter.Search != "" {
		conditions = append(conditions, sq.Expr("name ILIKE ?", "%"+filter.Search+"%"))
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(inventaireTable).Where(conditions).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(inventaireFields).
		From(inventaireTable).
		Where(conditions).
		OrderBy("created_at DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	list, err := r.queryInventaires(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *InventaireRepository) GetInventairesByUser(ctx context.Context, userID uint64) ([]entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE associated_to = $1 AND is_deleted = FALSE ORDER BY created_at DESC", inventaireFields, inventaireTable)
	return r.queryInventaires(ctx, query, userID)
}

func (r *InventaireRepository) GetInventairesByPlacement(ctx context.Context, placementType string, placementID uint64) ([]entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE placement_type = $1 AND id_placement = $2 AND is_deleted = FALSE ORDER BY created_at DESC", inventaireFields, inventaireTable)
	return r.queryInventaires(ctx, query, placementType, placementID)
}

func (r *InventaireRepository) GetInventairesByName(ctx context.Context, name string) ([]entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE name = $1 AND is_deleted = FALSE ORDER BY created_at DESC", inventaireFields, inventaireTable)
	return r.queryInventaires(ctx, query, name)
}

func (r *InventaireRepository) GetDeletedInventaires(ctx context.Context) ([]entities.Inventaire, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_deleted = TRUE ORDER BY deleted_at DESC", inventaireFields, inventaireTable)
	return r.queryInventaires(ctx, query)
}

func (r *InventaireRepository) CountInventaires(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE is_deleted = FALSE", inventaireTable)).Scan(&count)
	return count, err
}

func (r *InventaireRepository) CountInventairesByUser(ctx context.Context, userID uint64) (uint64, error) {
	var count uint64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE associated_to = $1 AND is_deleted = FALSE", inventaireTable)
	err := r.storage.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *InventaireRepository) CountByStatusForUser(ctx context.Context, userID uint64, status string) (uint64, error) {
	var count uint64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE associated_to = $1 AND status = $2 AND is_deleted = FALSE", inventaireTable)
	err := r.storage.QueryRow(ctx, query, userID, status).Scan(&count)
	return count, err
}

func (r *InventaireRepository) UpdateInventaire(ctx context.Context, id uint64, inv entities.Inventaire) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET name = $1, status = $2, start_date = $3, associated_to = $4, placement_type = $5,
            id_placement = $6, total_equipment = $7, priority = $8, inventory_type = $9,
            updated_at = CURRENT_TIMESTAMP
        WHERE id_inventaire = $10 AND is_deleted = FALSE
    `, inventaireTable)

	result, err := r.storage.Exec(ctx, query,
		inv.Name,
		inv.Status,
		inv.StartDate,
		inv.AssociatedTo,
		inv.PlacementType,
		inv.IDPlacement,
		inv.TotalEquipment,
		inv.Priority,
		inv.InventoryType,
		id,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatusCAS меняет статус только если текущее значение не изменилось
// с момента чтения. Два конкурирующих перехода на одной записи не затрут
// друг друга молча: проигравший получит ErrNotFound.
func (r *InventaireRepository) UpdateStatusCAS(ctx context.Context, id uint64, currentStatus, newStatus string) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id_inventaire = $2 AND status = $3 AND is_deleted = FALSE
    `, inventaireTable)

	result, err := r.storage.Exec(ctx, query, newStatus, id, currentStatus)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventaireRepository) UpdateTotalEquipment(ctx context.Context, id uint64, total int) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET total_equipment = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id_inventaire = $2 AND is_deleted = FALSE
    `, inventaireTable)

	result, err := r.storage.Exec(ctx, query, total, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventaireRepository) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	var query string
	if deleted {
		query = fmt.Sprintf("UPDATE %s SET is_deleted = TRUE, deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id_inventaire = $1", inventaireTable)
	} else {
		query = fmt.Sprintf("UPDATE %s SET is_deleted = FALSE, deleted_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id_inventaire = $1", inventaireTable)
	}

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventaireRepository) scanInventaire(row pgx.Row) (*entities.Inventaire, error) {
	var inv entities.Inventaire
	err := row.Scan(
		&inv.ID,
		&inv.Name,
		&inv.Status,
		&inv.StartDate,
		&inv.AssociatedTo,
		&inv.PlacementType,
		&inv.IDPlacement,
		&inv.TotalEquipment,
		&inv.Priority,
		&inv.InventoryType,
		&inv.IsDeleted,
		&inv.DeletedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InventaireRepository) queryInventaires(ctx context.Context, query string, args ...interface{}) ([]entities.Inventaire, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entities.Inventaire, 0)
	for rows.Next() {
		var inv entities.Inventaire
		err := rows.Scan(
			&inv.ID,
			&inv.Name,
			&inv.Status,
			&inv.StartDate,
			&inv.AssociatedTo,
			&inv.PlacementType,
			&inv.IDPlacement,
			&inv.TotalEquipment,
			&inv.Priority,
			&inv.InventoryType,
			&inv.IsDeleted,
			&inv.DeletedAt,
			&inv.CreatedAt,
			&inv.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
