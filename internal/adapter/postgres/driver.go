package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepo struct {
	db *pgxpool.Pool
}

func NewDriverRepo(db *pgxpool.Pool) *DriverRepo {
	return &DriverRepo{
		db: db,
	}
}

const driverColumns = `id, name, phone, status, current_location, rating, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.Status,
		&d.CurrentLocation,
		&d.Rating,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	const op = "DriverRepo.Create"
	query := `
		INSERT INTO drivers(name, phone, status, current_location, rating)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		driver.Name,
		driver.Phone,
		driver.Status,
		driver.CurrentLocation,
		driver.Rating,
	).Scan(&driver.ID, &driver.CreatedAt, &driver.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	return nil
}

func (r *DriverRepo) List(ctx context.Context) ([]models.Driver, error) {
	const op = "DriverRepo.List"
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		ORDER BY id`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		drivers = append(drivers, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return drivers, nil
}

func (r *DriverRepo) Get(ctx context.Context, id int64) (*models.Driver, error) {
	const op = "DriverRepo.Get"
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = $1`

	d, err := scanDriver(TxorDB(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrDriverNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return d, nil
}

func (r *DriverRepo) FindAvailable(ctx context.Context) (*models.Driver, error) {
	const op = "DriverRepo.FindAvailable"
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE status = $1
		ORDER BY id
		LIMIT 1`

	d, err := scanDriver(TxorDB(ctx, r.db).QueryRow(ctx, query, types.DriverAvailable))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNoDriversAvailable
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return d, nil
}

// ClaimFirstAvailable marks the first available driver busy and returns it.
// SKIP LOCKED keeps concurrent booking transactions from queueing on the same
// row: each claim either takes a distinct driver or sees none at all.
func (r *DriverRepo) ClaimFirstAvailable(ctx context.Context) (*models.Driver, error) {
	const op = "DriverRepo.ClaimFirstAvailable"
	query := `
		UPDATE drivers
		SET status = $1, updated_at = now()
		WHERE id = (
			SELECT id FROM drivers
			WHERE status = $2
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + driverColumns

	d, err := scanDriver(TxorDB(ctx, r.db).QueryRow(ctx, query, types.DriverBusy, types.DriverAvailable))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNoDriversAvailable
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return d, nil
}

func (r *DriverRepo) SetStatus(ctx context.Context, id int64, status types.DriverStatus) error {
	const op = "DriverRepo.SetStatus"
	query := `
		UPDATE drivers
		SET status = $1, updated_at = now()
		WHERE id = $2`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDriverNotFound
	}

	return nil
}

func (r *DriverRepo) CountByStatus(ctx context.Context, status types.DriverStatus) (int, error) {
	const op = "DriverRepo.CountByStatus"
	query := `
		SELECT COUNT(*) FROM drivers WHERE status = $1`

	var n int
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}

	return n, nil
}
