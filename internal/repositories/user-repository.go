package repositories

import (
	"context"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTable = "users"
const userFields = "id, name, email, password, is_admin, is_deleted, created_at, updated_at"

type UserRepositoryInterface interface {
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{
		storage: storage,
	}
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := "SELECT " + userFields + " FROM " + userTable + " WHERE id = $1 AND is_deleted = FALSE"
	return r.scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := "SELECT " + userFields + " FROM " + userTable + " WHERE email = $1 AND is_deleted = FALSE"
	return r.scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.IsAdmin,
		&user.IsDeleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
