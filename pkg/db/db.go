package db

import (
	"errors"
	"time"
)

// Common database errors
var (
	// ErrAmbiguousTarget is returned when both a database name and a URL are given
	ErrAmbiguousTarget = errors.New("specify either db name or db url, not both")
	// ErrMissingPassword is returned when no password is available
	ErrMissingPassword = errors.New("DB_READER_PASSWORD environment variable or .env file with DB_READER_PASSWORD is required")
	// ErrNoTarget is returned when nothing resolves to a connection URL
	ErrNoTarget = errors.New("must specify either db name or db url, or set POSTGRES_URL or DB_DEFAULT_NAME in environment")
	// ErrUnsupportedScheme is returned for URLs no registered driver handles
	ErrUnsupportedScheme = errors.New("unsupported database url scheme")
	// ErrNoDatabase is returned when the client has been closed
	ErrNoDatabase = errors.New("no database connection")
	// ErrNoColumn is returned when a table has no column by the requested name
	ErrNoColumn = errors.New("no such column")
)

// Config represents connection pool and query logging configuration
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// SlowQueryThreshold logs a warning for queries at least this slow.
	// Negative disables the warning.
	SlowQueryThreshold time.Duration
}

// SetDefaults sets default values for the configuration if they are not set
func (c *Config) SetDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnMaxIdleTime == 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.SlowQueryThreshold == 0 {
		c.SlowQueryThreshold = 500 * time.Millisecond
	}
}
