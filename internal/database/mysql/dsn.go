package mysql

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
)

const (
	defaultHost = "localhost"
	defaultPort = 3306
)

// DSN converts a parsed connection string into a go-sql-driver DSN.
// Connection options are passed through as DSN parameters; the driver
// validates the known ones.
func DSN(info *database.ConnInfo) (string, error) {
	host := info.Host
	if host == "" {
		host = defaultHost
	}
	port := info.Port
	if port == 0 {
		port = defaultPort
	}

	cfg := gomysql.NewConfig()
	cfg.User = info.User
	cfg.Passwd = info.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = info.Database

	dsn := cfg.FormatDSN()
	if len(info.Options) > 0 {
		params := url.Values{}
		for _, k := range info.OptionKeys() {
			params.Set(k, database.OptionString(info.Options[k]))
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + params.Encode()
	}

	parsed, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "invalid mysql connection options", err)
	}
	return parsed.FormatDSN(), nil
}
