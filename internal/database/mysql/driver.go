package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
)

// Driver is a database.DB over database/sql and go-sql-driver/mysql.
type Driver struct {
	db *sql.DB
}

// New opens a pool for cfg and pings it within cfg.ConnectTimeout.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "mysql dsn", err)
	}
	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := NewFromDB(db)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// NewFromDB wraps an open pool; Close closes it.
func NewFromDB(db *sql.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping mysql")
	}
	return nil
}

func (d *Driver) Close() { _ = d.db.Close() }

func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query")
	}
	return &mysqlRows{rows}, nil
}

func (d *Driver) ServerVersion(ctx context.Context) (string, error) {
	var v string
	if err := d.db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&v); err != nil {
		return "", mapError(err, "server version")
	}
	return v, nil
}

type mysqlRows struct {
	*sql.Rows
}

func (r *mysqlRows) Close() { _ = r.Rows.Close() }

func (r *mysqlRows) Err() error {
	if err := r.Rows.Err(); err != nil {
		return mapError(err, "iterate rows")
	}
	return nil
}
