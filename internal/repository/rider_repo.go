package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/model"

	"github.com/jackc/pgx/v5"
)

// RiderRepository defines operations for rider data
type RiderRepository interface {
	Create(ctx context.Context, rider *model.Rider) error
	FindByCode(ctx context.Context, code string) (*model.Rider, error)
	FindAll(ctx context.Context) ([]model.Rider, error)
	SetOnRoute(ctx context.Context, code, aTime string) (bool, error)
	// UpdateStatus persists a status report only if the stored last click is
	// not after notAfter. It reports false when the guard rejected the write.
	UpdateStatus(ctx context.Context, rider *model.Rider, notAfter time.Time) (bool, error)
	Delete(ctx context.Context, code string) error
}

type riderRepository struct {
	db DBTX
}

// NewRiderRepository creates a new RiderRepository
func NewRiderRepository(db DBTX) RiderRepository {
	return &riderRepository{db: db}
}

const riderColumns = `id, name, code, status, device_info, r_time, a_time, last_click_dt, created_at`

func scanRider(row pgx.Row, r *model.Rider) error {
	return row.Scan(&r.ID, &r.Name, &r.Code, &r.Status, &r.DeviceInfo, &r.RTime, &r.ATime, &r.LastClickAt, &r.CreatedAt)
}

// Create inserts a rider. A taken code yields ErrDuplicate so the caller can
// retry with a different one.
func (r *riderRepository) Create(ctx context.Context, rider *model.Rider) error {
	sql := `INSERT INTO riders (name, code, status, device_info, r_time, a_time, last_click_dt, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            ON CONFLICT (code) DO NOTHING RETURNING id`
	err := r.db.QueryRow(ctx, sql,
		rider.Name, rider.Code, rider.Status, rider.DeviceInfo,
		rider.RTime, rider.ATime, rider.LastClickAt, rider.CreatedAt,
	).Scan(&rider.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create rider: %w", err)
	}
	return nil
}

// FindByCode retrieves a rider by code. A missing rider yields nil, nil.
func (r *riderRepository) FindByCode(ctx context.Context, code string) (*model.Rider, error) {
	rider := &model.Rider{}
	sql := `SELECT ` + riderColumns + ` FROM riders WHERE code = $1`
	if err := scanRider(r.db.QueryRow(ctx, sql, code), rider); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rider by code: %w", err)
	}
	return rider, nil
}

// FindAll returns a snapshot of every rider
func (r *riderRepository) FindAll(ctx context.Context) ([]model.Rider, error) {
	rows, err := r.db.Query(ctx, `SELECT `+riderColumns+` FROM riders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query riders: %w", err)
	}
	defer rows.Close()

	riders := []model.Rider{}
	for rows.Next() {
		var rd model.Rider
		if err := scanRider(rows, &rd); err != nil {
			return nil, fmt.Errorf("failed to scan rider row: %w", err)
		}
		riders = append(riders, rd)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rider rows: %w", err)
	}
	return riders, nil
}

// SetOnRoute marks a rider as dispatched. It reports whether a row matched.
func (r *riderRepository) SetOnRoute(ctx context.Context, code, aTime string) (bool, error) {
	sql := `UPDATE riders SET status = $1, a_time = $2 WHERE code = $3`
	cmdTag, err := r.db.Exec(ctx, sql, model.RiderStatusOnRoute, aTime, code)
	if err != nil {
		return false, fmt.Errorf("failed to set rider on route: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *riderRepository) UpdateStatus(ctx context.Context, rider *model.Rider, notAfter time.Time) (bool, error) {
	sql := `UPDATE riders
            SET status = $1, device_info = $2, r_time = $3, last_click_dt = $4
            WHERE code = $5 AND last_click_dt <= $6`
	cmdTag, err := r.db.Exec(ctx, sql,
		rider.Status, rider.DeviceInfo, rider.RTime, rider.LastClickAt, rider.Code, notAfter,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update rider status: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// Delete removes a rider. Deleting a missing code is not an error.
func (r *riderRepository) Delete(ctx context.Context, code string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM riders WHERE code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete rider: %w", err)
	}
	return nil
}
