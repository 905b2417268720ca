package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "password_hash", "role", "last_device", "created_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	user := &model.User{Email: "a@test.com", PasswordHash: "hash", Role: model.RoleAdmin, LastDevice: model.DeviceNoLogin, CreatedAt: time.Now()}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.Email, user.PasswordHash, user.Role, user.LastDevice, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &model.User{Email: "a@test.com"})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("super@test.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(1, "super@test.com", "hash", model.RoleSuperadmin, model.DeviceNoLogin, created))

	user, err := repo.FindByEmail(context.Background(), "super@test.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, model.RoleSuperadmin, user.Role)
	assert.Equal(t, model.DeviceNoLogin, user.LastDevice)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@test.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "nobody@test.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByID_DBError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(3).
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByID(context.Background(), 3)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestUserRepository_ListByRole(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE role = $1 ORDER BY id")).
		WithArgs(model.RoleAdmin).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(2, "a@test.com", "h1", model.RoleAdmin, model.DeviceNoLogin, now).
			AddRow(3, "b@test.com", "h2", model.RoleAdmin, "Firefox", now))

	users, err := repo.ListByRole(context.Background(), model.RoleAdmin)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@test.com", users[0].Email)
	assert.Equal(t, "Firefox", users[1].LastDevice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE role = $1")).
		WithArgs(model.RoleAdmin).
		WillReturnRows(pgxmock.NewRows(userCols))

	users, err := repo.ListByRole(context.Background(), model.RoleAdmin)

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_CountByRole(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE role = $1")).
		WithArgs(model.RoleSuperadmin).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountByRole(context.Background(), model.RoleSuperadmin)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepository_UpdateLastDevice(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_device = $1 WHERE id = $2")).
		WithArgs("Chrome", 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateLastDevice(context.Background(), 4, "Chrome"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_Missing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 99))
	assert.NoError(t, mock.ExpectationsWereMet())
}
