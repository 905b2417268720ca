package config

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "SERVER_PORT", "SHUTDOWN_TIMEOUT", "SUPERADMIN_EMAIL", "RIDER_COOLDOWN",
		"RIDER_CODE_ATTEMPTS", "DISPLAY_TIMEZONE", "LOG_LEVEL")
	t.Setenv("DB_DRIVER", DriverMemory)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, "super@test.com", cfg.Seed.SuperadminEmail)
	assert.Equal(t, 5*time.Minute, cfg.Rider.Cooldown)
	assert.Equal(t, 10, cfg.Rider.CodeAttempts)
	assert.Equal(t, time.Local, cfg.Rider.Location)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RIDER_COOLDOWN", "90s")
	t.Setenv("RIDER_CODE_ATTEMPTS", "3")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("SUPERADMIN_EMAIL", "root@bites.test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Rider.Cooldown)
	assert.Equal(t, 3, cfg.Rider.CodeAttempts)
	assert.Equal(t, "UTC", cfg.Rider.Location.String())
	assert.Equal(t, "root@bites.test", cfg.Seed.SuperadminEmail)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad cooldown":      {"RIDER_COOLDOWN", "five minutes"},
		"negative cooldown": {"RIDER_COOLDOWN", "-1m"},
		"zero attempts":     {"RIDER_CODE_ATTEMPTS", "0"},
		"bad attempts":      {"RIDER_CODE_ATTEMPTS", "many"},
		"bad timezone":      {"DISPLAY_TIMEZONE", "Mars/Olympus"},
		"bad shutdown":      {"SHUTDOWN_TIMEOUT", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", DriverMemory)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDBConfig_Postgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "bites")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "riders")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := LoadDBConfig()

	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "host=localhost port=5432 user=bites password=pw dbname=riders sslmode=disable", cfg.DSN)
}

func TestLoadDBConfig_DatabaseURL(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/riders")

	cfg, err := LoadDBConfig()

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/riders", cfg.DSN)
}

func TestLoadDBConfig_Missing(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	_, err := LoadDBConfig()
	assert.Error(t, err)
}

func TestLoadDBConfig_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := LoadDBConfig()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestAutoMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, AutoMigrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoMigrate_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnError(errors.New("permission denied"))

	err = AutoMigrate(context.Background(), mock)
	assert.ErrorContains(t, err, "unable to apply migrations")
}

func TestSchema_FreeFormRiderColumns(t *testing.T) {
	assert.NotContains(t, Schema, "VARCHAR")
	for _, col := range []string{"name TEXT", "status TEXT", "r_time TEXT", "a_time TEXT"} {
		assert.Contains(t, Schema, col)
	}
}
