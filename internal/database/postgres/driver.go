package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
)

// Driver is a database.DB over pgxpool.
type Driver struct {
	pool *pgxpool.Pool
}

// New opens a pool for cfg and pings it.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, mapError(err, "create pool")
	}

	d := &Driver{pool: pool}
	if err := d.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

func poolConfig(cfg *database.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "postgres dsn", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	// Catalog reads never write; keep sessions from opening write transactions.
	pc.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	return pc, nil
}

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping postgres")
	}
	return nil
}

func (d *Driver) Close() { d.pool.Close() }

func (d *Driver) Query(ctx context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "query")
	}
	return pgxRows{rows}, nil
}

func (d *Driver) ServerVersion(ctx context.Context) (string, error) {
	var v string
	if err := d.pool.QueryRow(ctx, "SHOW server_version").Scan(&v); err != nil {
		return "", mapError(err, "server version")
	}
	return v, nil
}

type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Err() error {
	if err := r.Rows.Err(); err != nil {
		return mapError(err, "iterate rows")
	}
	return nil
}
