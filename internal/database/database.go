// Package database holds the engine-neutral connection contract the catalog
// providers read through, and the parsing of connection URLs.
//
// Engine packages (mysql, postgres) turn a ConnInfo into a driver DSN and a
// Config into a pooled DB.
package database

import (
	"context"
	"time"
)

// Driver names a database engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Config sizes the pool for one generation run.
type Config struct {
	Driver Driver
	DSN    string // engine-native, see mysql.DSN and postgres.DSN

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	ConnectTimeout time.Duration
	QueryTimeout   time.Duration // per catalog query, applied by the providers
}

// DefaultConfig suits a short-lived run issuing a few concurrent catalog
// queries. Callers grow MaxConns to match their fan-out.
func DefaultConfig(driver Driver, dsn string) *Config {
	return &Config{
		Driver:          driver,
		DSN:             dsn,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  10 * time.Second,
		QueryTimeout:    30 * time.Second,
	}
}

// DB is a pooled, read-only view of a catalog. Implementations map native
// errors to *errs.Error.
type DB interface {
	Ping(ctx context.Context) error
	Close()

	// Query runs a statement returning rows. Callers must Close the result.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// ServerVersion reports the engine's version string, e.g. "8.4.2".
	ServerVersion(ctx context.Context) (string, error)
}

// Rows iterates a result set.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}
