package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashir13-debug/bites-tracking/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	UpdateLastDevice(ctx context.Context, id int, device string) error
	Delete(ctx context.Context, id int) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, last_device, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.LastDevice, &u.CreatedAt)
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, password_hash, role, last_device, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Email, user.PasswordHash, user.Role, user.LastDevice, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email. A missing user yields nil, nil.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, email), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// ListByRole returns every user holding role, oldest first
func (r *userRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, sql, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// CountByRole counts users holding role
func (r *userRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return n, nil
}

// UpdateLastDevice records the client identifier of the latest login
func (r *userRepository) UpdateLastDevice(ctx context.Context, id int, device string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_device = $1 WHERE id = $2`, device, id)
	if err != nil {
		return fmt.Errorf("failed to update last device: %w", err)
	}
	return nil
}

// Delete removes a user. Deleting a missing id is not an error.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
