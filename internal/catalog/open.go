package catalog

import (
	"context"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/database/mysql"
	"github.com/koustreak/schemats/internal/database/postgres"
	"github.com/koustreak/schemats/internal/errs"
)

// Connection is a Provider bound to the pool it reads from.
type Connection struct {
	Provider
	db database.DB
}

// Ping checks the underlying pool.
func (c *Connection) Ping(ctx context.Context) error { return c.db.Ping(ctx) }

// ServerVersion reports the engine version of the connected server.
func (c *Connection) ServerVersion(ctx context.Context) (string, error) {
	return c.db.ServerVersion(ctx)
}

// Close releases the pool.
func (c *Connection) Close() { c.db.Close() }

// Open connects to the database described by info and returns the provider
// for its engine. Pool sizing starts from database.DefaultConfig; tune, when
// non-nil, may adjust it before connecting.
func Open(ctx context.Context, info *database.ConnInfo, tune func(*database.Config)) (*Connection, error) {
	switch info.Driver {
	case database.DriverMySQL:
		dsn, err := mysql.DSN(info)
		if err != nil {
			return nil, err
		}
		cfg := database.DefaultConfig(database.DriverMySQL, dsn)
		if tune != nil {
			tune(cfg)
		}
		db, err := mysql.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Connection{Provider: NewMySQL(db, info.Database, cfg.QueryTimeout), db: db}, nil

	case database.DriverPostgres:
		dsn, err := postgres.DSN(info)
		if err != nil {
			return nil, err
		}
		cfg := database.DefaultConfig(database.DriverPostgres, dsn)
		if tune != nil {
			tune(cfg)
		}
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Connection{Provider: NewPostgres(db, "", cfg.QueryTimeout), db: db}, nil
	}
	return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported driver %q", info.Driver)
}
