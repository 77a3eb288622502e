package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionRepo struct {
	db *pgxpool.Pool
}

func NewMissionRepo(db *pgxpool.Pool) *MissionRepo {
	return &MissionRepo{
		db: db,
	}
}

const missionColumns = `m.id, m.booking_id, m.driver_id, d.name, m.status,
		m.started_at, m.completed_at, m.created_at, m.updated_at`

func scanMission(row pgx.Row) (*models.Mission, error) {
	var m models.Mission
	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.DriverID,
		&m.DriverName,
		&m.Status,
		&m.StartedAt,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MissionRepo) Create(ctx context.Context, mission *models.Mission) error {
	const op = "MissionRepo.Create"
	query := `
		INSERT INTO missions(id, booking_id, driver_id, status, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6)`

	if _, err := TxorDB(ctx, r.db).Exec(ctx, query,
		mission.ID,
		mission.BookingID,
		mission.DriverID,
		mission.Status,
		mission.CreatedAt,
		mission.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	const op = "MissionRepo.Get"
	query := `
		SELECT ` + missionColumns + `
		FROM missions m
		JOIN drivers d ON d.id = m.driver_id
		WHERE m.id = $1`

	m, err := scanMission(TxorDB(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrMissionNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return m, nil
}

func (r *MissionRepo) Update(ctx context.Context, mission *models.Mission) error {
	const op = "MissionRepo.Update"
	query := `
		UPDATE missions
		SET status = $1, started_at = $2, completed_at = $3, updated_at = $4
		WHERE id = $5`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query,
		mission.Status,
		mission.StartedAt,
		mission.CompletedAt,
		mission.UpdatedAt,
		mission.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrMissionNotFound
	}

	return nil
}

func (r *MissionRepo) ListActive(ctx context.Context) ([]models.Mission, error) {
	const op = "MissionRepo.ListActive"
	query := `
		SELECT ` + missionColumns + `
		FROM missions m
		JOIN drivers d ON d.id = m.driver_id
		WHERE m.status NOT IN ($1, $2)
		ORDER BY m.created_at`

	return r.list(ctx, op, query, types.MissionCompleted, types.MissionCancelled)
}

func (r *MissionRepo) ListCompleted(ctx context.Context, limit int) ([]models.Mission, error) {
	const op = "MissionRepo.ListCompleted"
	query := `
		SELECT ` + missionColumns + `
		FROM missions m
		JOIN drivers d ON d.id = m.driver_id
		WHERE m.status IN ($1, $2)
		ORDER BY m.completed_at DESC NULLS LAST
		LIMIT $3`

	return r.list(ctx, op, query, types.MissionCompleted, types.MissionCancelled, limit)
}

func (r *MissionRepo) list(ctx context.Context, op, query string, args ...any) ([]models.Mission, error) {
	rows, err := TxorDB(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var missions []models.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		missions = append(missions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return missions, nil
}

func (r *MissionRepo) CountActive(ctx context.Context) (int, error) {
	const op = "MissionRepo.CountActive"
	query := `
		SELECT COUNT(*) FROM missions WHERE status NOT IN ($1, $2)`

	var n int
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, types.MissionCompleted, types.MissionCancelled).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}

	return n, nil
}

func (r *MissionRepo) CountActiveForDriver(ctx context.Context, driverID int64) (int, error) {
	const op = "MissionRepo.CountActiveForDriver"
	query := `
		SELECT COUNT(*) FROM missions WHERE driver_id = $1 AND status NOT IN ($2, $3)`

	var n int
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, driverID, types.MissionCompleted, types.MissionCancelled).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}

	return n, nil
}

func (r *MissionRepo) CountCompleted(ctx context.Context) (int, error) {
	const op = "MissionRepo.CountCompleted"
	query := `
		SELECT COUNT(*) FROM missions WHERE status = $1`

	var n int
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, types.MissionCompleted).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}

	return n, nil
}
