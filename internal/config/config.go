package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config groups every setting the server reads at start-up
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	Seed   SeedConfig
	Rider  RiderConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	GinMode         string
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
	File   string // empty means stdout only
}

// SeedConfig holds the credentials of the superadmin created on first boot
type SeedConfig struct {
	SuperadminEmail    string
	SuperadminPassword string
}

// RiderConfig tunes the rider lifecycle rules
type RiderConfig struct {
	Cooldown     time.Duration // minimum gap between accepted status updates
	CodeAttempts int           // inserts tried before giving up on a free code
	Location     *time.Location
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cooldown, err := getDuration("RIDER_COOLDOWN", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	if cooldown < 0 {
		return nil, fmt.Errorf("RIDER_COOLDOWN must not be negative, got %s", cooldown)
	}
	attempts, err := getInt("RIDER_CODE_ATTEMPTS", 10)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		return nil, fmt.Errorf("RIDER_CODE_ATTEMPTS must be at least 1, got %d", attempts)
	}

	loc := time.Local
	if tz := os.Getenv("DISPLAY_TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
		}
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: shutdown,
			GinMode:         os.Getenv("GIN_MODE"),
		},
		DB: *dbCfg,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
		Seed: SeedConfig{
			SuperadminEmail:    getEnv("SUPERADMIN_EMAIL", "super@test.com"),
			SuperadminPassword: getEnv("SUPERADMIN_PASSWORD", "123"),
		},
		Rider: RiderConfig{
			Cooldown:     cooldown,
			CodeAttempts: attempts,
			Location:     loc,
		},
	}, nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
