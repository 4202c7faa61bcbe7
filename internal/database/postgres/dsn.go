package postgres

import (
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
)

const (
	defaultHost = "localhost"
	defaultPort = 5432
)

// DSN converts a parsed connection string into a pgx connection URL.
// Options become URL parameters (sslmode, connect_timeout, ...).
func DSN(info *database.ConnInfo) (string, error) {
	host := info.Host
	if host == "" {
		host = defaultHost
	}
	port := info.Port
	if port == 0 {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + info.Database,
	}
	switch {
	case info.User != "" && info.Password != "":
		u.User = url.UserPassword(info.User, info.Password)
	case info.User != "":
		u.User = url.User(info.User)
	}

	q := url.Values{}
	for _, k := range info.OptionKeys() {
		q.Set(k, database.OptionString(info.Options[k]))
	}
	u.RawQuery = q.Encode()

	dsn := u.String()
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "invalid postgres connection options", err)
	}
	return dsn, nil
}
