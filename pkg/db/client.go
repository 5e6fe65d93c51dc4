package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/centurytx/jadekit/internal/config"
	"github.com/centurytx/jadekit/internal/logger"
)

// Named binds query parameters by name. Placeholders are written as :name.
type Named map[string]any

// Client holds one connection pool to the resolved database
type Client struct {
	db            *sqlx.DB
	url           string
	driverName    string
	slowThreshold time.Duration
}

// NewClient resolves the connection URL from settings and opts and opens a
// connection pool against it. The pool connects lazily, so an unreachable
// server surfaces on first use rather than here.
func NewClient(s *config.Settings, opts Options) (*Client, error) {
	rawURL, err := ResolveURL(s, opts)
	if err != nil {
		return nil, err
	}

	driverName, dsn, err := driverFor(rawURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool := opts.Pool
	pool.SetDefaults()
	if isMemoryDSN(driverName, dsn) {
		// every new connection would see its own empty database
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		pool.ConnMaxLifetime = 0
		pool.ConnMaxIdleTime = 0
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	logger.Debug("Connected to database")

	return &Client{
		db:            db,
		url:           rawURL,
		driverName:    driverName,
		slowThreshold: pool.SlowQueryThreshold,
	}, nil
}

// QueryToTable executes query and returns the whole result set as a Table.
// Pass positional values for the driver's native placeholders, or a single
// Named (or map[string]any) to bind :name placeholders.
func (c *Client) QueryToTable(ctx context.Context, query string, params ...any) (*Table, error) {
	if c.db == nil {
		return nil, ErrNoDatabase
	}

	query, args, err := c.bind(query, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := c.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Error("error closing rows: %v", closeErr)
		}
	}()

	table, err := scanTable(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to process query results: %w", err)
	}
	c.trackQuery(query, len(args), table.Len(), time.Since(start))
	return table, nil
}

// trackQuery logs query timing, warning when the query was slow. Parameter
// values are not logged.
func (c *Client) trackQuery(query string, nargs, nrows int, d time.Duration) {
	ms := float64(d.Microseconds()) / 1000
	if c.slowThreshold >= 0 && d >= c.slowThreshold {
		logger.Warn("Slow query detected (%.2fms): %s [params: %d]", ms, query, nargs)
		return
	}
	logger.Debug("Query returned %d rows in %.2fms", nrows, ms)
}

// bind rewrites named parameters into the driver's positional bindvars
func (c *Client) bind(query string, params []any) (string, []any, error) {
	if len(params) != 1 {
		return query, params, nil
	}

	var named map[string]any
	switch p := params[0].(type) {
	case Named:
		named = p
	case map[string]any:
		named = p
	default:
		return query, params, nil
	}

	q, args, err := sqlx.Named(query, named)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind named parameters: %w", err)
	}
	return c.db.Rebind(q), args, nil
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return ErrNoDatabase
	}
	return c.db.PingContext(ctx)
}

// Close closes the connection pool
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// URL returns the resolved connection URL with the password masked
func (c *Client) URL() string {
	return redact(c.url)
}

// DriverName returns the name of the database driver
func (c *Client) DriverName() string {
	return c.driverName
}

// DB returns the underlying connection pool
func (c *Client) DB() *sqlx.DB {
	return c.db
}
