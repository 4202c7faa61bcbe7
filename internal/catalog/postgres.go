package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/schema"
)

const defaultPostgresSchema = "public"

// Postgres reads information_schema and pg_catalog on a PostgreSQL server.
// Columns of a user-defined enum type are reported with native type "enum"
// and a synthesized enum('a','b') definition built from pg_enum, so they
// resolve exactly like MySQL enums.
type Postgres struct {
	db            database.DB
	defaultSchema string
	timeout       queryTimeout
}

// NewPostgres returns a provider over db. An empty defaultSchema means "public".
func NewPostgres(db database.DB, defaultSchema string, timeout time.Duration) *Postgres {
	if defaultSchema == "" {
		defaultSchema = defaultPostgresSchema
	}
	return &Postgres{db: db, defaultSchema: defaultSchema, timeout: queryTimeout(timeout)}
}

func (p *Postgres) DefaultSchema() string { return p.defaultSchema }

func (p *Postgres) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	const q = `
		SELECT table_name::text
		FROM information_schema.columns
		WHERE table_schema = $1
		GROUP BY table_name
		ORDER BY table_name`

	ctx, cancel := p.timeout.context(ctx)
	defer cancel()

	tables, err := queryStrings(ctx, p.db, q, schemaName)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list tables of "+schemaName, err)
	}
	return tables, nil
}

func (p *Postgres) ListColumns(ctx context.Context, schemaName, table string) ([]schema.ColumnDescriptor, error) {
	const q = `
		SELECT c.column_name::text,
		       CASE WHEN t.typtype = 'e' THEN 'enum' ELSE c.udt_name::text END,
		       c.ordinal_position::int,
		       c.is_nullable::text,
		       c.column_default::text,
		       COALESCE(pgd.description, ''),
		       (c.is_identity = 'YES' OR c.is_generated = 'ALWAYS')
		FROM information_schema.columns c
		LEFT JOIN pg_catalog.pg_namespace tn ON tn.nspname = c.udt_schema
		LEFT JOIN pg_catalog.pg_type t       ON t.typname = c.udt_name AND t.typnamespace = tn.oid
		LEFT JOIN pg_catalog.pg_namespace rn ON rn.nspname = c.table_schema
		LEFT JOIN pg_catalog.pg_class r      ON r.relname = c.table_name AND r.relnamespace = rn.oid
		LEFT JOIN pg_catalog.pg_description pgd
		       ON pgd.objoid = r.oid AND pgd.objsubid = c.ordinal_position
		WHERE c.table_schema = $1
		  AND c.table_name   = $2
		ORDER BY c.ordinal_position`

	ctx, cancel := p.timeout.context(ctx)
	defer cancel()

	rows, err := p.db.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list columns of "+schemaName+"."+table, err)
	}
	defer rows.Close()

	var cols []schema.ColumnDescriptor
	for rows.Next() {
		var (
			c          schema.ColumnDescriptor
			isNullable string
		)
		if err := rows.Scan(&c.Name, &c.NativeType, &c.OrdinalPosition, &isNullable, &c.DefaultValue, &c.Comment, &c.IsAutoGenerated); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan column of "+table, err)
		}
		c.IsNullable = strings.EqualFold(isNullable, "YES")
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "iterate columns of "+table, err)
	}
	return cols, nil
}

func (p *Postgres) ListEnumColumns(ctx context.Context, schemaName, table string) ([]schema.EnumColumn, error) {
	const q = `
		SELECT c.column_name::text,
		       e.enumlabel::text
		FROM information_schema.columns c
		JOIN pg_catalog.pg_namespace n ON n.nspname = c.udt_schema
		JOIN pg_catalog.pg_type t      ON t.typname = c.udt_name AND t.typnamespace = n.oid
		JOIN pg_catalog.pg_enum e      ON e.enumtypid = t.oid
		WHERE c.table_schema = $1
		  AND c.table_name   = $2
		ORDER BY c.ordinal_position, e.enumsortorder`

	ctx, cancel := p.timeout.context(ctx)
	defer cancel()

	rows, err := p.db.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "list enum columns of "+schemaName+"."+table, err)
	}
	defer rows.Close()

	var (
		order  []string
		labels = map[string][]string{}
	)
	for rows.Next() {
		var column, label string
		if err := rows.Scan(&column, &label); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan enum label of "+table, err)
		}
		if _, seen := labels[column]; !seen {
			order = append(order, column)
		}
		labels[column] = append(labels[column], label)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindOf(err), "iterate enum labels of "+table, err)
	}

	out := make([]schema.EnumColumn, 0, len(order))
	for _, column := range order {
		out = append(out, schema.EnumColumn{
			ColumnName: column,
			NativeType: "enum",
			Definition: enumDefinition(labels[column]),
		})
	}
	return out, nil
}

// enumDefinition formats labels the way MySQL reports column_type.
func enumDefinition(labels []string) string {
	if len(labels) == 0 {
		return "enum()"
	}
	return "enum('" + strings.Join(labels, "','") + "')"
}
