package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u    models.User
		hash string
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&hash,
		&u.Role,
		&u.DriverID,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.SetPasswordHash(hash)
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	const op = "UserRepo.Create"
	query := `
		INSERT INTO users(id, username, email, password_hash, role, driver_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash(),
		user.Role,
		user.DriverID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return types.ErrUserExists
		}
		return fmt.Errorf("%s: %v", op, err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "UserRepo.GetByID"
	query := `
		SELECT id, username, email, password_hash, role, driver_id, created_at
		FROM users
		WHERE id = $1`

	u, err := scanUser(TxorDB(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return u, nil
}

// GetByLogin matches either the username or the email.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "UserRepo.GetByLogin"
	query := `
		SELECT id, username, email, password_hash, role, driver_id, created_at
		FROM users
		WHERE username = $1 OR email = $1`

	u, err := scanUser(TxorDB(ctx, r.db).QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return u, nil
}
