package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	Driver string
	DSN    string
}

// LoadDBConfig loads database configuration from environment variables.
// DATABASE_URL wins over the individual DB_* variables.
func LoadDBConfig() (*DBConfig, error) {
	driver := getEnv("DB_DRIVER", DriverPostgres)
	switch driver {
	case DriverMemory:
		return &DBConfig{Driver: driver}, nil
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", driver, DriverPostgres, DriverMemory)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		return &DBConfig{Driver: driver, DSN: url}, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := getEnv("DB_SSLMODE", "disable")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, sslMode)

	return &DBConfig{Driver: driver, DSN: dsn}, nil
}

// ConnectDB establishes a connection pool to PostgreSQL, retrying while the
// database comes up.
func ConnectDB(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info("Successfully connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.WithError(err).Warnf("Failed to connect to database (attempt %d/%d), retrying in %v", i+1, maxRetries, retryInterval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Execer runs schema statements; *pgxpool.Pool satisfies it
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema creates the users and riders tables if they don't exist
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('superadmin', 'admin')) DEFAULT 'admin',
		last_device TEXT NOT NULL DEFAULT 'No Login Yet',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	-- At most one superadmin
	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_single_superadmin
		ON users (role) WHERE role = 'superadmin';

	CREATE TABLE IF NOT EXISTS riders (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT UNIQUE NOT NULL,
		status TEXT NOT NULL DEFAULT 'Available',
		device_info TEXT NOT NULL DEFAULT 'Not Registered',
		r_time TEXT NOT NULL DEFAULT '--',
		a_time TEXT NOT NULL DEFAULT '--',
		last_click_dt TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);
`

// AutoMigrate applies Schema
func AutoMigrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	log.Info("AutoMigrate applied successfully")
	return nil
}
