package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/schema"
)

// MySQL reads information_schema on a MySQL or MariaDB server.
// A MySQL schema is a database.
type MySQL struct {
	db            database.DB
	defaultSchema string
	timeout       queryTimeout
}

// NewMySQL returns a provider over db. defaultSchema is normally the
// database named in the connection string.
func NewMySQL(db database.DB, defaultSchema string, timeout time.Duration) *MySQL {
	return &MySQL{db: db, defaultSchema: defaultSchema, timeout: queryTimeout(timeout)}
}

func (m *MySQL) DefaultSchema() string { return m.defaultSchema }

func (m *MySQL) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.columns
		WHERE table_schema = ?
		GROUP BY table_name
		ORDER BY table_name`

	ctx, cancel := m.timeout.context(ctx)
	defer cancel()

	tables, err := queryStrings(ctx, m.db, q, schemaName)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list tables of "+schemaName, err)
	}
	return tables, nil
}

func (m *MySQL) ListColumns(ctx context.Context, schemaName, table string) ([]schema.ColumnDescriptor, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       ordinal_position,
		       is_nullable,
		       column_default,
		       column_comment,
		       extra
		FROM information_schema.columns
		WHERE table_schema = ?
		  AND table_name   = ?
		ORDER BY ordinal_position`

	ctx, cancel := m.timeout.context(ctx)
	defer cancel()

	rows, err := m.db.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list columns of "+schemaName+"."+table, err)
	}
	defer rows.Close()

	var cols []schema.ColumnDescriptor
	for rows.Next() {
		var (
			c          schema.ColumnDescriptor
			isNullable string
			comment    *string
			extra      *string
		)
		if err := rows.Scan(&c.Name, &c.NativeType, &c.OrdinalPosition, &isNullable, &c.DefaultValue, &comment, &extra); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan column of "+table, err)
		}
		c.IsNullable = strings.EqualFold(isNullable, "YES")
		c.Comment = derefString(comment)
		c.IsAutoGenerated = isMySQLGenerated(derefString(extra))
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "iterate columns of "+table, err)
	}
	return cols, nil
}

func (m *MySQL) ListEnumColumns(ctx context.Context, schemaName, table string) ([]schema.EnumColumn, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       column_type
		FROM information_schema.columns
		WHERE data_type IN ('enum', 'set')
		  AND table_schema = ?
		  AND table_name   = ?
		ORDER BY ordinal_position`

	ctx, cancel := m.timeout.context(ctx)
	defer cancel()

	rows, err := m.db.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list enum columns of "+schemaName+"."+table, err)
	}
	defer rows.Close()

	var out []schema.EnumColumn
	for rows.Next() {
		var e schema.EnumColumn
		if err := rows.Scan(&e.ColumnName, &e.NativeType, &e.Definition); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan enum column of "+table, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "iterate enum columns of "+table, err)
	}
	return out, nil
}

// isMySQLGenerated reports whether the server fills the column itself:
// auto_increment keys and generated columns.
func isMySQLGenerated(extra string) bool {
	extra = strings.ToLower(extra)
	return strings.Contains(extra, "auto_increment") ||
		strings.Contains(extra, "virtual generated") ||
		strings.Contains(extra, "stored generated")
}
