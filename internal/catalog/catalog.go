// Package catalog reads column metadata from a database catalog.
package catalog

import (
	"context"
	"time"

	"github.com/koustreak/schemats/internal/database"
	"github.com/koustreak/schemats/internal/schema"
)

// Provider returns raw catalog rows for one schema. Implementations map
// driver failures to *errs.Error and never retry.
type Provider interface {
	// ListTables returns the tables of schemaName that have at least one
	// column, sorted by name.
	ListTables(ctx context.Context, schemaName string) ([]string, error)

	// ListColumns returns one descriptor per column of table, in ordinal order.
	ListColumns(ctx context.Context, schemaName, table string) ([]schema.ColumnDescriptor, error)

	// ListEnumColumns returns the enum/set columns of table with their raw
	// definitions, e.g. enum('a','b').
	ListEnumColumns(ctx context.Context, schemaName, table string) ([]schema.EnumColumn, error)

	// DefaultSchema is the schema used when the caller names none.
	DefaultSchema() string
}

// queryTimeout bounds one catalog query. Zero means no extra deadline.
type queryTimeout time.Duration

func (t queryTimeout) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(t))
}

// queryStrings runs q and collects its single text column.
func queryStrings(ctx context.Context, db database.DB, q string, args ...any) ([]string, error) {
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
